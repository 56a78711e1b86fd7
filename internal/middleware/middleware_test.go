package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irysworld/internal/observability"
)

func TestContextMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(Viewer("u3"))
	app.Use(TracingMiddleware())
	app.Use(ContextMiddleware())
	app.Use(StructuredLogger())

	var got struct {
		requestID, viewerID, traceID, correlationID string
	}
	app.Get("/ctx", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		got.requestID, _ = ctx.Value(RequestIDKey).(string)
		got.viewerID, _ = ctx.Value(ViewerIDKey).(string)
		got.traceID, _ = ctx.Value(TraceIDKey).(string)
		got.correlationID = observability.ExtractCorrelationID(ctx)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	assert.Equal(t, "req-42", got.requestID)
	assert.Equal(t, "req-42", got.correlationID)
	assert.Equal(t, "u3", got.viewerID)
	assert.Equal(t, resp.Header.Get("X-Trace-ID"), got.traceID)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestViewerID(t *testing.T) {
	app := fiber.New()
	app.Get("/none", func(c *fiber.Ctx) error { return c.SendString(ViewerID(c)) })
	app.Get("/bound", Viewer("u1"), func(c *fiber.Ctx) error { return c.SendString(ViewerID(c)) })

	for path, want := range map[string]string{"/none": "", "/bound": "u1"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, want, string(body), path)
	}
}
