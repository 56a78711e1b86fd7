package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"irysworld/internal/cache"
	"irysworld/internal/featureflags"
	"irysworld/internal/models"
	"irysworld/internal/observability"
	"irysworld/internal/suggest"
	"irysworld/internal/validation"
)

const (
	msgSuggestionUnconfigured = "API key is not configured."
	msgSuggestionFailed       = "Failed to generate AI suggestion. Please try again."
)

// SuggestionService drafts posts from ideas. It never touches feed state.
type SuggestionService struct {
	gen     suggest.Generator
	rdb     *redis.Client
	flags   *featureflags.Manager
	ttl     time.Duration
	timeout time.Duration
}

type SuggestInput struct {
	ViewerID string
	Prompt   string
}

// NewSuggestionService wires a generator with an optional Redis cache. A nil
// flags manager disables gating.
func NewSuggestionService(gen suggest.Generator, rdb *redis.Client, flags *featureflags.Manager, ttl, timeout time.Duration) *SuggestionService {
	return &SuggestionService{
		gen:     gen,
		rdb:     rdb,
		flags:   flags,
		ttl:     ttl,
		timeout: timeout,
	}
}

func (s *SuggestionService) Suggest(ctx context.Context, in SuggestInput) (*models.Suggestion, error) {
	if s.flags != nil && !s.flags.Enabled(featureflags.AISuggestions, in.ViewerID) {
		observability.Suggestions.WithLabelValues("disabled").Inc()
		return nil, models.NewUnavailableError("AI suggestions are disabled")
	}
	if err := validation.ValidateText("Prompt", in.Prompt, validation.MaxPromptLength); err != nil {
		observability.Suggestions.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(err.Error())
	}

	span, ctx := observability.NewSpan(ctx, "suggestion.generate", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.AddAttributes(attribute.String("genai.model", s.gen.Model()))

	var text string
	key := cache.SuggestionKey(s.gen.Model(), in.Prompt)
	hit, err := cache.Aside(ctx, s.rdb, key, &text, s.ttl, func() error {
		genCtx := ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			genCtx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		start := time.Now()
		out, err := s.gen.Generate(genCtx, in.Prompt)
		observability.SuggestionLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		span.SetError(err)
		if errors.Is(err, suggest.ErrNotConfigured) {
			observability.Suggestions.WithLabelValues("unconfigured").Inc()
			return nil, models.NewUnavailableError(msgSuggestionUnconfigured)
		}
		observability.Suggestions.WithLabelValues("failed").Inc()
		observability.GlobalLogger.ErrorContext(ctx, "post suggestion failed", "error", err.Error())
		return nil, models.NewUpstreamError(msgSuggestionFailed, err)
	}

	span.AddAttributes(attribute.Bool("cache.hit", hit))
	if hit {
		observability.Suggestions.WithLabelValues("cached").Inc()
	} else {
		observability.Suggestions.WithLabelValues("ok").Inc()
	}
	return &models.Suggestion{Text: text, Model: s.gen.Model(), Cached: hit}, nil
}
