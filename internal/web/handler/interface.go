package handler

import (
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB, h *host.Host) error
}
