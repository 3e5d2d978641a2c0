package cta

import (
	"html"
	"io"

	"github.com/eq-toolbox/eq-toolbox/internal/markup"
	"github.com/eq-toolbox/eq-toolbox/internal/request"
	"github.com/eq-toolbox/eq-toolbox/internal/settings"
)

// Settings screen the options live on.
const (
	SettingsGroup   = "reading"
	SettingsPage    = "reading"
	SettingsSection = "default"
)

// RegisterSettings registers both options and their form fields. It runs on admin_init.
func (p *Plugin) RegisterSettings(_ *request.Context) {
	if p.registry == nil {
		return
	}

	p.registry.Register(SettingsGroup, OptionEnable, settings.Definition{
		Kind:     settings.Boolean,
		Default:  true,
		Sanitize: settings.SanitizeBool,
	})

	p.registry.Register(SettingsGroup, OptionCTA, settings.Definition{
		Kind:     settings.String,
		Default:  "",
		Sanitize: SanitizeCTA,
	})

	p.registry.AddField(settings.Field{
		ID:      OptionEnable,
		Title:   "EQ Toolbox: activar CTA en posts",
		Page:    SettingsPage,
		Section: SettingsSection,
		Render:  p.RenderEnableField,
	})

	p.registry.AddField(settings.Field{
		ID:      OptionCTA,
		Title:   "EQ Toolbox: texto del CTA",
		Page:    SettingsPage,
		Section: SettingsSection,
		Render:  p.RenderCTAField,
	})
}

// SanitizeCTA reduces submitted CTA text to post safe HTML.
func SanitizeCTA(raw string) any {
	return markup.Sanitize(raw)
}

// RenderEnableField writes the checkbox of OptionEnable.
func (p *Plugin) RenderEnableField(w io.Writer) error {
	checked := ""
	if p.opts.Bool(OptionEnable, true) {
		checked = ` checked="checked"`
	}

	_, err := io.WriteString(w,
		`<label style="display:flex;gap:8px;align-items:center;">`+
			`<input type="checkbox" name="`+html.EscapeString(OptionEnable)+`" value="1"`+checked+` />`+
			`<span>Mostrar CTA al final del contenido en entradas individuales</span>`+
			`</label>`)

	return err
}

// RenderCTAField writes the textarea of OptionCTA.
func (p *Plugin) RenderCTAField(w io.Writer) error {
	// the stored value is sanitized HTML, show it as typed
	text := html.UnescapeString(p.opts.String(OptionCTA, ""))

	_, err := io.WriteString(w,
		`<textarea name="`+html.EscapeString(OptionCTA)+`" rows="4" style="width:100%;max-width:640px;">`+
			html.EscapeString(text)+
			`</textarea>`+
			`<p class="description">Se mostrará al final del contenido (solo en single post).</p>`)

	return err
}
