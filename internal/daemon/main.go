// Package daemon wires storage, the plugin host and the web service together.
package daemon

import (
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
	"github.com/eq-toolbox/eq-toolbox/internal/cta"
	"github.com/eq-toolbox/eq-toolbox/internal/db/controller/option"
	"github.com/eq-toolbox/eq-toolbox/internal/db/dsn"
	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
	"github.com/eq-toolbox/eq-toolbox/internal/web"
)

// ErrUnknownEngine is returned for a database engine without driver.
var ErrUnknownEngine = errors.New("unknown database engine")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	host       *host.Host
	webService *web.Service
}

// Start starts the web service and blocks until it is shut down.
func (d *Daemon) Start() error {
	if err := d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port)); err != nil {
		return err
	}

	d.webService.WaitShutdown()

	return nil
}

// Host returns the plugin host of the daemon.
func (d *Daemon) Host() *host.Host {
	return d.host
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := hashAdminPassword(cfg); err != nil {
		return nil, err
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(
		&models.Option{},
		&models.Post{},
	); err != nil {
		return nil, errors.Wrap(err, "migrate database")
	}

	if cfg.Seed.Enabled {
		if err = seed(db); err != nil {
			return nil, err
		}
	}

	h := host.New(option.Store{DB: db})
	if err = h.Load(cta.New(nil)); err != nil {
		return nil, errors.Wrap(err, "load plugins")
	}

	return &Daemon{
		cfg:        cfg,
		host:       h,
		webService: web.New(cfg, db, h),
	}, nil
}

// OpenDB opens the database of the configured engine.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case config.EngineSQLite, "":
		dialector = sqlite.Open(dsn.Create(cfg))
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Create(cfg))
	default:
		return nil, errors.Wrap(ErrUnknownEngine, cfg.DB.Engine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s database", cfg.DB.Engine)
	}

	log.Info().Str("engine", cfg.DB.Engine).Msg("database connected")

	return db, nil
}

// hashAdminPassword replaces a plain text admin password by its argon2id hash.
func hashAdminPassword(cfg *config.Config) error {
	if cfg.Admin.PasswordHash != "" {
		cfg.Admin.Password = ""

		return nil
	}

	log.Warn().Msg("admin password is configured in plain text, set Admin.PasswordHash instead")

	hash, err := argon2id.CreateHash(cfg.Admin.Password, argon2id.DefaultParams)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}

	cfg.Admin.PasswordHash = hash
	cfg.Admin.Password = ""

	return nil
}
