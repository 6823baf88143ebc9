// Package auth guards routes with a static API key.
package auth

import (
	"crypto/subtle"

	"filevault/core/response"

	"github.com/gofiber/fiber/v2"
)

// Header carries the API key.
const Header = "X-API-Key"

// Config configures the middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables the check.
	ApiKey string
	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool
}

// New returns the API key middleware.
func New(cfg Config) fiber.Handler {
	expected := []byte(cfg.ApiKey)
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" || (cfg.Next != nil && cfg.Next(c)) {
			return c.Next()
		}

		key := c.Get(Header)
		if key == "" {
			key = c.Query("api_key")
		}
		if key == "" {
			return response.Unauthorized(c, "missing API key")
		}
		if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
			return response.Unauthorized(c, "invalid API key")
		}
		return c.Next()
	}
}
