package host

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eq-toolbox/eq-toolbox/internal/hook"
	"github.com/eq-toolbox/eq-toolbox/internal/request"
	"github.com/eq-toolbox/eq-toolbox/internal/shortcode"
)

type testPlugin struct {
	name string
	init func(h *Host) error
}

func (p testPlugin) Name() string       { return p.name }
func (p testPlugin) Init(h *Host) error { return p.init(h) }

func TestShortcodesRunAfterDefaultFilters(t *testing.T) {
	h := New(nil)

	require.NoError(t, h.Shortcodes.Add("tag", func(_ shortcode.Attributes, _ string, _ *request.Context) string {
		return "expanded"
	}))
	h.Hooks.AddFilter(hook.TheContent, hook.DefaultPriority, func(value string, _ *request.Context) string {
		// sees the raw token
		return value + "|" + value
	})

	assert.Equal(t, "expanded|expanded", h.TheContent("[tag]", request.Singular("post")))
}

func TestAdminInitRunsOnce(t *testing.T) {
	h := New(nil)
	calls := 0

	h.Hooks.AddAction(hook.AdminInit, hook.DefaultPriority, func(req *request.Context) {
		assert.True(t, req.IsAdmin())
		calls++
	})

	h.AdminInit()
	h.AdminInit()

	assert.Equal(t, 1, calls)
}

func TestEnqueueScriptsNeedsStyles(t *testing.T) {
	h := New(nil)
	calls := 0

	h.Hooks.AddAction(hook.EnqueueScripts, hook.DefaultPriority, func(_ *request.Context) {
		calls++
	})

	h.EnqueueScripts(nil)
	h.EnqueueScripts(request.Feed())
	h.EnqueueScripts(request.Singular("post"))

	assert.Equal(t, 1, calls)
}

func TestLoad(t *testing.T) {
	h := New(nil)
	errBoom := errors.New("boom")

	ok := testPlugin{name: "ok", init: func(_ *Host) error { return nil }}
	bad := testPlugin{name: "bad", init: func(_ *Host) error { return errBoom }}
	never := testPlugin{name: "never", init: func(_ *Host) error { t.Fatal("loaded after failure"); return nil }}

	require.ErrorIs(t, h.Load(ok, bad, never), errBoom)
	assert.Equal(t, []string{"ok"}, h.Plugins())
}
