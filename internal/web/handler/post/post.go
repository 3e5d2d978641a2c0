// Package post serves single posts and pages.
package post

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
	postctl "github.com/eq-toolbox/eq-toolbox/internal/db/controller/post"
	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
	"github.com/eq-toolbox/eq-toolbox/internal/request"
	"github.com/eq-toolbox/eq-toolbox/internal/web/handler"
)

const (
	// PostPath is the route of a single post.
	PostPath = "/posts/:slug"
	// PagePath is the route of a page.
	PagePath = "/pages/:slug"

	// Template renders a single post or page.
	Template = "post"
)

// Service is the single post handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	db   *gorm.DB
	host *host.Host
}

// Handler is the single post handler.
var Handler = Service{}

// Init registers the post and page routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, h *host.Host) error {
	if app == nil || cfg == nil || db == nil || h == nil {
		return handler.ErrNilDeps
	}

	s.cfg = cfg
	s.db = db
	s.host = h

	app.Get(PostPath, s.Show(models.PostTypePost))
	app.Get(PagePath, s.Show(models.PostTypePage))

	return nil
}

// Show returns the handler rendering one post of postType.
func (s *Service) Show(postType string) fiber.Handler {
	return func(c fiber.Ctx) error {
		p, err := postctl.GetBySlug(s.db, postType, c.Params("slug"))
		if errors.Is(err, postctl.ErrPostNotFound) || errors.Is(err, postctl.ErrSlugEmpty) {
			return fiber.ErrNotFound
		}

		if err != nil {
			return err
		}

		req := request.Singular(postType)
		s.host.EnqueueScripts(req)

		content, err := handler.Content(s.host, p, req)
		if err != nil {
			return err
		}

		return c.Render(Template, fiber.Map{
			"Title":     s.cfg.Title,
			"PageTitle": p.Title,
			"Post":      p,
			"Content":   content,
			"Styles":    handler.Styles(req),
		}, handler.BaseLayout)
	}
}
