package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"irysworld/internal/models"
	"irysworld/internal/suggest"
)

func TestCreateSuggestion(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, "a new nebula").Return("Look up tonight! #irysworld", nil).Once()
	app, _ := newTestApp(t, allFlags, gen)

	resp := doJSON(t, app, http.MethodPost, "/api/suggestions", SuggestionRequest{Prompt: "a new nebula"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out models.Suggestion
	decode(t, resp, &out)
	assert.Equal(t, "Look up tonight! #irysworld", out.Text)
	assert.Equal(t, "mock-model", out.Model)
	gen.AssertExpectations(t)
}

func TestCreateSuggestionFailures(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, "quota").Return("", errors.New("429 from upstream"))
	gen.On("Generate", mock.Anything, "no key").Return("", suggest.ErrNotConfigured)
	app, _ := newTestApp(t, allFlags, gen)

	resp := doJSON(t, app, http.MethodPost, "/api/suggestions", SuggestionRequest{Prompt: "quota"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Failed to generate AI suggestion. Please try again.", decodeError(t, resp).Error)

	resp = doJSON(t, app, http.MethodPost, "/api/suggestions", SuggestionRequest{Prompt: "no key"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "API key is not configured.", decodeError(t, resp).Error)

	resp = doJSON(t, app, http.MethodPost, "/api/suggestions", SuggestionRequest{Prompt: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Failures leave the feed untouched.
	resp = doJSON(t, app, http.MethodGet, "/api/feed", nil)
	var page feedPageBody
	decode(t, resp, &page)
	assert.Equal(t, 3, page.Total)
}

func TestCreateSuggestionDisabled(t *testing.T) {
	gen := new(MockGenerator)
	app, _ := newTestApp(t, "ai_suggestions=off", gen)

	resp := doJSON(t, app, http.MethodPost, "/api/suggestions", SuggestionRequest{Prompt: "idea"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}
