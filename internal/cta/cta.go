// Package cta appends a configurable call-to-action block to single blog posts.
//
// The block is rendered from two options, a switch and a free text, and is
// added automatically at the end of the post body. Authors can place it by
// hand with the [eq_cta] shortcode instead, in which case it is not added
// a second time.
package cta

import (
	"strings"

	"github.com/eq-toolbox/eq-toolbox/internal/markup"
	"github.com/eq-toolbox/eq-toolbox/internal/settings"
)

const (
	// Name of the plugin.
	Name = "eq-toolbox"

	// OptionCTA holds the raw CTA text.
	OptionCTA = "eq_toolbox_cta"
	// OptionEnable switches the CTA on and off.
	OptionEnable = "eq_toolbox_enable_cta"

	// ShortcodeTag is the shortcode authors use to place the CTA.
	ShortcodeTag = "eq_cta"

	// ClassName is the class of the CTA container.
	ClassName = "eq-toolbox-cta"

	// StyleHandle is the handle of the inline stylesheet.
	StyleHandle = "eq-toolbox-inline"

	// PostType is the only content type the CTA is appended to.
	PostType = "post"
)

// Options gives read access to stored plugin options.
type Options interface {
	Bool(name string, def bool) bool
	String(name, def string) string
}

// ShortcodeDetector reports whether content uses a shortcode.
type ShortcodeDetector interface {
	Has(content, tag string) bool
}

// Plugin is the CTA plugin.
type Plugin struct {
	opts       Options
	shortcodes ShortcodeDetector
	registry   *settings.Registry
}

// New returns a plugin reading its options from opts.
// With a nil opts the plugin uses the host options once loaded.
func New(opts Options) *Plugin {
	return &Plugin{opts: opts}
}

// Name implements host.Plugin.
func (p *Plugin) Name() string {
	return Name
}

// RenderHTML returns the CTA block, or "" when it is disabled or has no text.
func (p *Plugin) RenderHTML() string {
	if !p.opts.Bool(OptionEnable, true) {
		renders.WithLabelValues("disabled").Inc()
		return ""
	}

	text := strings.TrimSpace(p.opts.String(OptionCTA, ""))
	if text == "" {
		renders.WithLabelValues("empty").Inc()
		return ""
	}

	renders.WithLabelValues("rendered").Inc()

	return `<div class="` + ClassName + `">` + markup.Sanitize(markup.AutoP(text)) + `</div>`
}
