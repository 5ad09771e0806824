package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

// Auth creates an authentication middleware checking the x-api-key
// header against the configured key. The comparison runs over SHA-256
// digests in constant time.
func Auth(apiKey string) fiber.Handler {
	expected := sha256.Sum256([]byte(apiKey))

	return func(c *fiber.Ctx) error {
		submitted := strings.TrimSpace(c.Get("x-api-key"))
		if submitted == "" {
			return domain.ErrUnauthorized
		}

		got := sha256.Sum256([]byte(submitted))
		if subtle.ConstantTimeCompare(got[:], expected[:]) != 1 {
			return domain.ErrUnauthorized
		}

		return c.Next()
	}
}
