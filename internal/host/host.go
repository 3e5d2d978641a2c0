// Package host provides the extension points plugins subscribe to and runs
// them for the web front end and admin.
package host

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/eq-toolbox/eq-toolbox/internal/hook"
	"github.com/eq-toolbox/eq-toolbox/internal/request"
	"github.com/eq-toolbox/eq-toolbox/internal/settings"
	"github.com/eq-toolbox/eq-toolbox/internal/shortcode"
)

// ShortcodePriority is where shortcodes are expanded in the_content,
// after filters on the default priority.
const ShortcodePriority = 11

// Plugin is an extension loaded into the host.
type Plugin interface {
	Name() string
	Init(h *Host) error
}

// Host bundles the registries shared by all plugins.
type Host struct {
	Hooks      *hook.Registry
	Shortcodes *shortcode.Registry
	Settings   *settings.Registry
	Options    settings.Options

	adminOnce sync.Once
	plugins   []string
}

// New returns a host storing settings in store.
func New(store settings.Store) *Host {
	h := &Host{
		Hooks:      hook.New(),
		Shortcodes: shortcode.New(),
		Settings:   settings.NewRegistry(store),
		Options:    settings.Options{Store: store},
	}

	h.Hooks.AddFilter(hook.TheContent, ShortcodePriority, h.Shortcodes.Do)

	return h
}

// Load initializes plugins in order. It stops at the first failing plugin.
func (h *Host) Load(plugins ...Plugin) error {
	for _, p := range plugins {
		if err := p.Init(h); err != nil {
			log.Error().Err(err).Str("plugin", p.Name()).Msg("can't load plugin")

			return err
		}

		h.plugins = append(h.plugins, p.Name())
		log.Info().Str("plugin", p.Name()).Msg("plugin loaded")
	}

	return nil
}

// Plugins returns the names of the loaded plugins.
func (h *Host) Plugins() []string {
	return append([]string(nil), h.plugins...)
}

// AdminInit runs the admin_init actions once per process.
func (h *Host) AdminInit() {
	h.adminOnce.Do(func() {
		h.Hooks.DoAction(hook.AdminInit, request.Admin())
	})
}

// TheContent filters the body of a post for req.
func (h *Host) TheContent(content string, req *request.Context) string {
	return h.Hooks.ApplyFilters(hook.TheContent, content, req)
}

// EnqueueScripts lets plugins queue their stylesheets into req.Styles.
func (h *Host) EnqueueScripts(req *request.Context) {
	if req == nil || req.Styles == nil {
		return
	}

	h.Hooks.DoAction(hook.EnqueueScripts, req)
}
