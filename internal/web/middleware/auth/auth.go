// Package auth protects the admin area with HTTP basic authentication.
//
// The single admin account comes from the configuration, its password is
// kept as an argon2id hash.
//
// Usage:
//
//	admin := app.Group("/admin", auth.New(auth.Config{
//		Username:     cfg.Admin.Username,
//		PasswordHash: cfg.Admin.PasswordHash,
//		Realm:        cfg.Webserver.Realm,
//	}))
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// DefaultRealm is used when Config.Realm is empty.
const DefaultRealm = "Restricted"

// LocalsUser is the fiber.Locals key holding the authenticated user name.
const LocalsUser = "AdminUser"

// Config of the middleware.
type Config struct {
	Username     string
	PasswordHash string
	Realm        string
}

// New returns the basic auth middleware.
func New(cfg Config) fiber.Handler {
	if cfg.Realm == "" {
		cfg.Realm = DefaultRealm
	}

	challenge := `Basic realm="` + strings.ReplaceAll(cfg.Realm, `"`, "") + `", charset="UTF-8"`

	return func(c fiber.Ctx) error {
		user, pass, ok := ParseBasic(c.Get(fiber.HeaderAuthorization))
		if ok && verify(cfg, user, pass) {
			c.Locals(LocalsUser, user)

			return c.Next()
		}

		if ok {
			log.Warn().Str("user", user).Str("ip", c.IP()).Msg("admin login failed")
		}

		c.Set(fiber.HeaderWWWAuthenticate, challenge)

		return fiber.ErrUnauthorized
	}
}

func verify(cfg Config, user, pass string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) != 1 {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(pass, cfg.PasswordHash)
	if err != nil {
		log.Error().Err(err).Msg("can't compare admin password hash")

		return false
	}

	return match
}

// ParseBasic extracts the credentials of a basic Authorization header.
func ParseBasic(header string) (string, string, bool) {
	const prefix = "basic "

	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", false
	}

	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", false
	}

	return user, pass, true
}
