// Package reading serves the "Reading" settings screen of the admin area.
//
// The form is built from the fields plugins add to the reading page while
// handling admin_init. A submission stores every setting of the reading
// group through its sanitizer.
package reading

import (
	"bytes"
	"html/template"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/csrf"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
	"github.com/eq-toolbox/eq-toolbox/internal/web/handler"
)

const (
	// Path is the route of the screen inside the admin group.
	Path = "/options-reading"

	// Group is the settings group saved by the form.
	Group = "reading"
	// Page is the settings page whose fields are shown.
	Page = "reading"

	// CSRFField is the form field carrying the csrf token.
	CSRFField = "_csrf"

	// Template renders the screen.
	Template = "admin/options-reading"

	msgSaved   = "Ajustes guardados."
	msgInvalid = "Los datos enviados no son válidos."
)

// FieldView is a rendered form row.
type FieldView struct {
	ID    string
	Title string
	HTML  template.HTML
}

type submission struct {
	Values map[string]string `validate:"dive,max=65535"`
}

// Service is the reading settings handler service.
type Service struct {
	cfg      *config.Config
	host     *host.Host
	validate *validator.Validate
}

// Handler is the reading settings handler.
var Handler = Service{}

// Init registers the routes on router, which is expected to be the
// authenticated admin group.
func (s *Service) Init(router fiber.Router, cfg *config.Config, _ *gorm.DB, h *host.Host) error {
	if router == nil || cfg == nil || h == nil {
		return handler.ErrNilDeps
	}

	s.cfg = cfg
	s.host = h
	s.validate = validator.New()

	router.Get(Path, s.Get)
	router.Post(Path, s.Post)

	return nil
}

// Get renders the screen.
func (s *Service) Get(c fiber.Ctx) error {
	s.host.AdminInit()

	return s.render(c, "", "")
}

// Post stores the submitted settings and renders the screen again.
func (s *Service) Post(c fiber.Ctx) error {
	s.host.AdminInit()

	form := make(map[string]string)
	for _, st := range s.host.Settings.Settings(Group) {
		form[st.Name] = c.FormValue(st.Name)
	}

	if err := s.validate.Struct(submission{Values: form}); err != nil {
		log.Warn().Err(err).Msg("invalid reading settings submission")
		c.Status(fiber.StatusBadRequest)

		return s.render(c, "", msgInvalid)
	}

	if err := s.host.Settings.Save(Group, form); err != nil {
		return errors.Wrap(err, "save reading settings")
	}

	log.Info().Str("group", Group).Msg("settings saved")

	return s.render(c, msgSaved, "")
}

func (s *Service) render(c fiber.Ctx, message, errMsg string) error {
	fields, err := s.fields()
	if err != nil {
		return err
	}

	return c.Render(Template, fiber.Map{
		"Title":     s.cfg.Title,
		"PageTitle": "Ajustes de lectura",
		"Action":    c.OriginalURL(),
		"Fields":    fields,
		"Message":   message,
		"Error":     errMsg,
		"Styles":    template.HTML(""),
		"CSRFField": CSRFField,
		"CSRFToken": csrf.TokenFromContext(c),
	}, handler.BaseLayout)
}

func (s *Service) fields() ([]FieldView, error) {
	var (
		views []FieldView
		buf   bytes.Buffer
	)

	for _, f := range s.host.Settings.Fields(Page) {
		buf.Reset()

		if f.Render != nil {
			if err := f.Render(&buf); err != nil {
				return nil, errors.Wrapf(err, "render field %s", f.ID)
			}
		}

		views = append(views, FieldView{
			ID:    f.ID,
			Title: f.Title,
			HTML:  template.HTML(buf.String()), //nolint:gosec
		})
	}

	return views, nil
}
