package cta

import (
	"github.com/eq-toolbox/eq-toolbox/internal/hook"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
	"github.com/eq-toolbox/eq-toolbox/internal/request"
	"github.com/eq-toolbox/eq-toolbox/internal/shortcode"
)

// Style is the inline stylesheet of the CTA container.
const Style = `
.eq-toolbox-cta{
  margin-top:24px;
  padding:16px;
  border:1px solid #e6e6e6;
  border-radius:14px;
}
.eq-toolbox-cta p{ margin:0; }
`

// Init implements host.Plugin.
func (p *Plugin) Init(h *host.Host) error {
	if p.opts == nil {
		p.opts = h.Options
	}

	p.shortcodes = h.Shortcodes
	p.registry = h.Settings

	h.Hooks.AddAction(hook.AdminInit, hook.DefaultPriority, p.RegisterSettings)
	h.Hooks.AddFilter(hook.TheContent, hook.DefaultPriority, p.FilterAppendCTA)
	h.Hooks.AddAction(hook.EnqueueScripts, hook.DefaultPriority, p.EnqueueStyles)

	return h.Shortcodes.Add(ShortcodeTag, p.ShortcodeCTA)
}

// FilterAppendCTA appends the CTA to the body of a single post rendered by
// the main query. Content that already places the shortcode is left alone.
func (p *Plugin) FilterAppendCTA(content string, req *request.Context) string {
	if req.IsAdmin() || !req.IsMainQuery() || !req.InTheLoop() {
		injections.WithLabelValues("skipped").Inc()
		return content
	}

	if !req.IsSingular(PostType) {
		injections.WithLabelValues("skipped").Inc()
		return content
	}

	if p.shortcodes != nil && p.shortcodes.Has(content, ShortcodeTag) {
		injections.WithLabelValues("shortcode").Inc()
		return content
	}

	block := p.RenderHTML()
	if block == "" {
		injections.WithLabelValues("empty").Inc()
		return content
	}

	injections.WithLabelValues("appended").Inc()

	return content + block
}

// ShortcodeCTA expands [eq_cta show="1"]. Any show other than "1" hides the CTA.
func (p *Plugin) ShortcodeCTA(atts shortcode.Attributes, _ string, req *request.Context) string {
	if req.IsAdmin() {
		return ""
	}

	atts = shortcode.Atts(shortcode.Attributes{"show": "1"}, atts)
	if atts["show"] != "1" {
		return ""
	}

	return p.RenderHTML()
}

// EnqueueStyles queues the inline stylesheet on single post pages.
func (p *Plugin) EnqueueStyles(req *request.Context) {
	if !req.IsSingular(PostType) || req.Styles == nil {
		return
	}

	req.Styles.Register(StyleHandle, "")
	req.Styles.Enqueue(StyleHandle)
	req.Styles.AddInline(StyleHandle, Style)
}
