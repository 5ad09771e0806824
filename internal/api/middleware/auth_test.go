package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

func newAuthTestApp(apiKey string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(testLogger()),
	})
	app.Use(Auth(apiKey))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "valid key",
			header:         "bio_valid_key",
			expectedStatus: 200,
		},
		{
			name:           "valid key with surrounding whitespace",
			header:         "  bio_valid_key  ",
			expectedStatus: 200,
		},
		{
			name:           "wrong key",
			header:         "bio_wrong_key",
			expectedStatus: 401,
		},
		{
			name:           "missing key",
			header:         "",
			expectedStatus: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp("bio_valid_key")

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.header != "" {
				req.Header.Set("x-api-key", tt.header)
			}

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuth_ResponseBody(t *testing.T) {
	app := newAuthTestApp("bio_valid_key")

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("x-api-key", "bio_wrong_key")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, domain.ErrUnauthorized.StatusCode, resp.StatusCode)
}
