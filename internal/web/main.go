// Package web serves the blog front end and the admin area of the host.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/extractors"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/csrf"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/gofiber/template/html/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
	fiberlogger "github.com/eq-toolbox/eq-toolbox/internal/logger/adapter/fiber"
	"github.com/eq-toolbox/eq-toolbox/internal/web/handler"
	"github.com/eq-toolbox/eq-toolbox/internal/web/handler/admin/reading"
	"github.com/eq-toolbox/eq-toolbox/internal/web/handler/archive"
	"github.com/eq-toolbox/eq-toolbox/internal/web/handler/feed"
	"github.com/eq-toolbox/eq-toolbox/internal/web/handler/post"
	"github.com/eq-toolbox/eq-toolbox/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the Prometheus metrics.
	MetricsPath = "/metrics"
	// AdminPath prefixes every route of the admin area.
	AdminPath = "/admin"
	// CSRFCookie holds the token the admin forms echo back.
	CSRFCookie = "eq_toolbox_csrf"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	host         *host.Host
}

// Start starts the web service on the given address. It returns at once,
// use WaitShutdown to block until the service is stopped.
func (s *Service) Start(addr string) error {
	go func() {
		err := s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}
	}()

	log.Info().Str("addr", addr).Msg("http server started")

	return nil
}

// WaitShutdown waits for a termination signal and stops the service gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown marks the service as not alive, waits the configured grace time
// and stops the http server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, h *host.Host) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if h == nil {
		panic("host cannot be nil")
	}

	templateEngine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   errorHandler,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
		db:           db,
		host:         h,
	}
	service.alive.Store(true)

	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log, CheckAliveURI: CheckAlivePath}))

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Get("/static*", static.New("", static.Config{FS: staticFS()}))

	mustInit(post.Handler.Init(app, cfg, db, h))
	mustInit(archive.Handler.Init(app, cfg, db, h))
	mustInit(feed.Handler.Init(app, cfg, db, h))

	admin := app.Group(AdminPath,
		auth.New(auth.Config{
			Username:     cfg.Admin.Username,
			PasswordHash: cfg.Admin.PasswordHash,
			Realm:        cfg.Webserver.Realm,
		}),
		// basic auth credentials are sent with cross site posts too
		csrf.New(csrf.Config{
			CookieName:     CSRFCookie,
			CookiePath:     AdminPath,
			CookieSameSite: fiber.CookieSameSiteStrictMode,
			CookieSecure:   strings.HasPrefix(cfg.Webserver.URL, "https://"),
			CookieHTTPOnly: true,
			Extractor:      extractors.FromForm(reading.CSRFField),
		}),
	)
	mustInit(reading.Handler.Init(admin, cfg, db, h))

	// the admin area has one screen
	admin.Get(handler.RootPath, func(c fiber.Ctx) error {
		return c.Redirect().To(AdminPath + reading.Path)
	})

	return service
}

func (s *Service) checkAlive(c fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(code).SendString(http.StatusText(code))
}

func mustInit(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("can't init web handler")
	}
}
