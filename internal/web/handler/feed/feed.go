// Package feed serves the latest posts as RSS 2.0.
package feed

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
	postctl "github.com/eq-toolbox/eq-toolbox/internal/db/controller/post"
	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
	"github.com/eq-toolbox/eq-toolbox/internal/request"
	"github.com/eq-toolbox/eq-toolbox/internal/web/handler"
)

const (
	// Path is the route of the feed.
	Path = "/feed"

	// Limit is the number of items in the feed.
	Limit = 20

	contentType = "application/rss+xml; charset=utf-8"
)

// RSS is the document root.
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

// Channel describes the site.
type Channel struct {
	Title string `xml:"title"`
	Link  string `xml:"link"`
	Items []Item `xml:"item"`
}

// Item is one post.
type Item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// Service is the feed handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	db   *gorm.DB
	host *host.Host
}

// Handler is the feed handler.
var Handler = Service{}

// Init registers the feed route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, h *host.Host) error {
	if app == nil || cfg == nil || db == nil || h == nil {
		return handler.ErrNilDeps
	}

	s.cfg = cfg
	s.db = db
	s.host = h

	app.Get(Path, s.Get)

	return nil
}

// Get writes the feed.
func (s *Service) Get(c fiber.Ctx) error {
	posts, err := postctl.List(s.db, models.PostTypePost, Limit)
	if err != nil {
		return err
	}

	base := strings.TrimRight(s.cfg.Webserver.URL, "/")
	req := request.Feed()

	doc := RSS{
		Version: "2.0",
		Channel: Channel{Title: s.cfg.Title, Link: base + handler.RootPath},
	}

	for i := range posts {
		content, err := handler.Content(s.host, &posts[i], req)
		if err != nil {
			return err
		}

		link := base + "/posts/" + posts[i].Slug
		doc.Channel.Items = append(doc.Channel.Items, Item{
			Title:       posts[i].Title,
			Link:        link,
			GUID:        link,
			PubDate:     posts[i].CreatedAt.UTC().Format(time.RFC1123Z),
			Description: string(content),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode feed")
	}

	c.Set(fiber.HeaderContentType, contentType)

	return c.SendString(xml.Header + string(out))
}
