package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eq-toolbox/eq-toolbox/internal/request"
)

func appendFilter(s string) Filter {
	return func(value string, _ *request.Context) string {
		return value + s
	}
}

func TestApplyFiltersPriorityOrder(t *testing.T) {
	r := New()
	r.AddFilter(TheContent, 20, appendFilter("c"))
	r.AddFilter(TheContent, DefaultPriority, appendFilter("a"))
	r.AddFilter(TheContent, DefaultPriority, appendFilter("b"))
	r.AddFilter(TheContent, 1, appendFilter("0"))

	assert.Equal(t, "x0abc", r.ApplyFilters(TheContent, "x", nil))
}

func TestApplyFiltersWithoutSubscribers(t *testing.T) {
	r := New()

	assert.Equal(t, "unchanged", r.ApplyFilters("nothing", "unchanged", nil))
	assert.False(t, r.HasFilter("nothing"))
}

func TestFilterSeesRequest(t *testing.T) {
	r := New()
	r.AddFilter(TheContent, DefaultPriority, func(value string, req *request.Context) string {
		if req.IsAdmin() {
			return value
		}

		return value + "!"
	})

	assert.Equal(t, "x", r.ApplyFilters(TheContent, "x", request.Admin()))
	assert.Equal(t, "x!", r.ApplyFilters(TheContent, "x", request.Singular("post")))
}

func TestDoAction(t *testing.T) {
	r := New()

	var calls []string

	r.AddAction(AdminInit, 5, func(_ *request.Context) { calls = append(calls, "late") })
	r.AddAction(AdminInit, 1, func(_ *request.Context) { calls = append(calls, "early") })
	r.AddAction(AdminInit, 1, nil)

	assert.True(t, r.HasAction(AdminInit))
	r.DoAction(AdminInit, nil)
	r.DoAction(EnqueueScripts, nil)

	assert.Equal(t, []string{"early", "late"}, calls)
}
