package service

import (
	"context"
	"strings"
	"time"

	"irysworld/internal/models"
	"irysworld/internal/notifications"
	"irysworld/internal/observability"
	"irysworld/internal/repository"
	"irysworld/internal/validation"
)

type StoryService struct {
	stories repository.StoryRepository
	users   repository.UserRepository
	events  EventPublisher
	now     func() time.Time
	newID   func(prefix string) string
}

type CreateStoryInput struct {
	AuthorID string
	ImageURL string
}

func NewStoryService(stories repository.StoryRepository, users repository.UserRepository, events EventPublisher) *StoryService {
	return &StoryService{
		stories: stories,
		users:   users,
		events:  events,
		now:     time.Now,
		newID:   newID,
	}
}

func (s *StoryService) ListStories(ctx context.Context) ([]models.Story, error) {
	recs, err := s.stories.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup := repository.Lookup(ctx, s.users)
	now := s.now()
	out := make([]models.Story, 0, len(recs))
	for _, rec := range recs {
		out = append(out, renderStory(rec, lookup, now))
	}
	return out, nil
}

func (s *StoryService) CreateStory(ctx context.Context, in CreateStoryInput) (*models.Story, error) {
	if _, err := s.users.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}
	image := strings.TrimSpace(in.ImageURL)
	if err := validation.ValidateImageRef(image); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	rec := &repository.StoryRecord{
		ID:        s.newID("s_"),
		AuthorID:  in.AuthorID,
		ImageURL:  image,
		CreatedAt: s.now(),
	}
	if err := s.stories.Create(ctx, rec); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.ContentCreated.WithLabelValues("story").Inc()

	story := renderStory(rec, repository.Lookup(ctx, s.users), s.now())
	publish(ctx, s.events, notifications.EventStoryCreated, story)
	return &story, nil
}

func renderStory(rec *repository.StoryRecord, lookup models.UserLookup, now time.Time) models.Story {
	return models.Story{
		ID:        rec.ID,
		User:      models.ResolveUser(lookup, rec.AuthorID),
		ImageURL:  rec.ImageURL,
		CreatedAt: rec.CreatedAt,
		TimeAgo:   models.TimeAgo(rec.CreatedAt, now),
	}
}
