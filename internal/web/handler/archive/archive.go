// Package archive serves the list of latest posts.
package archive

import (
	"html/template"
	"time"

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
	// Template renders the archive.
	Template = "archive"

	// Limit is the number of posts listed.
	Limit = 10
)

// Entry is a listed post.
type Entry struct {
	Title   string
	URL     string
	Date    time.Time
	Content template.HTML
}

// Service is the archive handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	db   *gorm.DB
	host *host.Host
}

// Handler is the archive handler.
var Handler = Service{}

// Init registers the archive route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, h *host.Host) error {
	if app == nil || cfg == nil || db == nil || h == nil {
		return handler.ErrNilDeps
	}

	s.cfg = cfg
	s.db = db
	s.host = h

	app.Get(handler.RootPath, s.Get)

	return nil
}

// Get renders the latest posts.
func (s *Service) Get(c fiber.Ctx) error {
	posts, err := postctl.List(s.db, models.PostTypePost, Limit)
	if err != nil {
		return err
	}

	req := request.Archive()
	s.host.EnqueueScripts(req)

	entries := make([]Entry, 0, len(posts))

	for i := range posts {
		content, err := handler.Content(s.host, &posts[i], req)
		if err != nil {
			return err
		}

		entries = append(entries, Entry{
			Title:   posts[i].Title,
			URL:     "/posts/" + posts[i].Slug,
			Date:    posts[i].CreatedAt,
			Content: content,
		})
	}

	return c.Render(Template, fiber.Map{
		"Title":   s.cfg.Title,
		"Entries": entries,
		"Styles":  handler.Styles(req),
	}, handler.BaseLayout)
}
