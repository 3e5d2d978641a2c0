package config

import (
	"github.com/eq-toolbox/eq-toolbox/internal/logger"
)

// Supported gorm engines.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Admin     Admin
	Webserver Webserver
	Seed      Seed
}

// DB holds the database configuration settings.
type DB struct {
	Engine   string `validate:"omitempty,oneof=sqlite mysql postgres"`
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // database name, or file path for sqlite
}

// Admin is the single account allowed into the admin area.
// Password is only meant for development, it is hashed at startup.
type Admin struct {
	Username     string `validate:"required"`
	Password     string `validate:"required_without=PasswordHash"`
	PasswordHash string `validate:"required_without=Password"` // argon2id hash
}

// Seed controls the sample content written into an empty database.
type Seed struct {
	Enabled bool
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
	Realm        string // basic auth realm of the admin area
}
