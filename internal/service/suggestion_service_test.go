package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irysworld/internal/featureflags"
	"irysworld/internal/models"
	"irysworld/internal/suggest"
)

type generatorStub struct {
	calls int
	text  string
	err   error
}

func (g *generatorStub) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.text, g.err
}

func (g *generatorStub) Model() string { return "test-model" }

func newSuggestionRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestSuggestionService_CachesDrafts(t *testing.T) {
	gen := &generatorStub{text: "Stargazing tonight! #irysworld"}
	svc := NewSuggestionService(gen, newSuggestionRedis(t), featureflags.NewManager("ai_suggestions=on"), time.Hour, time.Second)
	ctx := context.Background()

	first, err := svc.Suggest(ctx, SuggestInput{ViewerID: "u1", Prompt: "stargazing"})
	require.NoError(t, err)
	assert.Equal(t, "Stargazing tonight! #irysworld", first.Text)
	assert.Equal(t, "test-model", first.Model)
	assert.False(t, first.Cached)

	second, err := svc.Suggest(ctx, SuggestInput{ViewerID: "u2", Prompt: "stargazing"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, gen.calls)
}

func TestSuggestionService_WithoutRedis(t *testing.T) {
	gen := &generatorStub{text: "draft"}
	svc := NewSuggestionService(gen, nil, nil, time.Hour, 0)

	for i := 0; i < 2; i++ {
		out, err := svc.Suggest(context.Background(), SuggestInput{Prompt: "idea"})
		require.NoError(t, err)
		assert.False(t, out.Cached)
	}
	assert.Equal(t, 2, gen.calls)
}

func TestSuggestionService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		gen := &generatorStub{text: "draft"}
		svc := NewSuggestionService(gen, nil, featureflags.NewManager("ai_suggestions=off"), time.Hour, time.Second)
		_, err := svc.Suggest(ctx, SuggestInput{ViewerID: "u1", Prompt: "idea"})
		assert.True(t, models.HasCode(err, models.CodeUnavailable))
		assert.Zero(t, gen.calls)
	})

	t.Run("blank prompt", func(t *testing.T) {
		gen := &generatorStub{text: "draft"}
		svc := NewSuggestionService(gen, nil, nil, time.Hour, time.Second)
		_, err := svc.Suggest(ctx, SuggestInput{Prompt: "  "})
		assertValidationError(t, err)
		assert.Zero(t, gen.calls)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewSuggestionService(&generatorStub{err: suggest.ErrNotConfigured}, nil, nil, time.Hour, time.Second)
		_, err := svc.Suggest(ctx, SuggestInput{Prompt: "idea"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnavailable, appErr.Code)
		assert.Equal(t, "API key is not configured.", appErr.Message)
	})

	t.Run("upstream failure is not cached", func(t *testing.T) {
		gen := &generatorStub{err: errors.New("quota exceeded")}
		rdb := newSuggestionRedis(t)
		svc := NewSuggestionService(gen, rdb, nil, time.Hour, time.Second)

		_, err := svc.Suggest(ctx, SuggestInput{Prompt: "idea"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUpstream, appErr.Code)
		assert.Equal(t, "Failed to generate AI suggestion. Please try again.", appErr.Message)

		gen.err = nil
		gen.text = "recovered"
		out, err := svc.Suggest(ctx, SuggestInput{Prompt: "idea"})
		require.NoError(t, err)
		assert.Equal(t, "recovered", out.Text)
		assert.False(t, out.Cached)
	})
}
