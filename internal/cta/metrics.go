package cta

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renders = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "eq_toolbox_cta_renders_total",
			Help: "CTA render calls by result (rendered, disabled, empty).",
		},
		[]string{"result"},
	)

	injections = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "eq_toolbox_cta_injections_total",
			Help: "Content filter decisions by outcome (appended, skipped, shortcode, empty).",
		},
		[]string{"outcome"},
	)
)
