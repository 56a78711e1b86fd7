package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"irysworld/internal/bootstrap"
	"irysworld/internal/config"
	"irysworld/internal/models"
)

// MockGenerator is a mock of suggest.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, idea string) (string, error) {
	args := m.Called(ctx, idea)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Model() string { return "mock-model" }

func testConfig(flags string) *config.Config {
	return &config.Config{
		Port:                      "0",
		Env:                       "test",
		ViewerID:                  "u1",
		FeatureFlags:              flags,
		SuggestionTimeoutSeconds:  5,
		SuggestionCacheTTLMinutes: 60,
		SuggestionRateLimit:       10,
		AvatarMaxUploadSizeMB:     1,
		AvatarSize:                32,
	}
}

// newTestApp builds the full app over the seeded demo feed.
func newTestApp(t *testing.T, flags string, gen *MockGenerator) (*fiber.App, *Server) {
	t.Helper()
	cfg := testConfig(flags)
	rt, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	if gen == nil {
		gen = new(MockGenerator)
	}
	s := NewServerWithDeps(cfg, rt, gen)
	return s.NewApp(), s
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	decode(t, resp, &body)
	return body
}

const allFlags = "ai_suggestions=on,live_feed=on"
