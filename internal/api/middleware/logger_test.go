package middleware

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_AccessRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(Logger(logger))
	app.Get("/biometrics", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/biometrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	record := buf.String()
	assert.Contains(t, record, `"msg":"http request"`)
	assert.Contains(t, record, `"path":"/biometrics"`)
	assert.Contains(t, record, `"status":200`)
	assert.Contains(t, record, `"request_id":"`+resp.Header.Get(fiber.HeaderXRequestID)+`"`)
}

func TestLogger_ErrorLevelOnServerError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	app := fiber.New()
	app.Use(Logger(logger))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.SendStatus(500)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}
