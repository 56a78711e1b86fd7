package service

import (
	"context"
	"strings"
	"time"

	"irysworld/internal/models"
	"irysworld/internal/notifications"
	"irysworld/internal/observability"
	"irysworld/internal/poll"
	"irysworld/internal/repository"
	"irysworld/internal/thread"
	"irysworld/internal/validation"
)

type FeedService struct {
	feed   repository.FeedRepository
	users  repository.UserRepository
	events EventPublisher
	now    func() time.Time
	newID  func(prefix string) string
}

type CreatePostInput struct {
	AuthorID string
	Content  string
	ImageURL *string
}

type CreatePollInput struct {
	AuthorID string
	Question string
	Options  []string
}

type ListFeedInput struct {
	ViewerID string
	Limit    int
	Offset   int
}

func NewFeedService(feed repository.FeedRepository, users repository.UserRepository, events EventPublisher) *FeedService {
	return &FeedService{
		feed:   feed,
		users:  users,
		events: events,
		now:    time.Now,
		newID:  newID,
	}
}

// CreatePost prepends a post. It needs text, an image, or both.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if _, err := s.users.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	var image *string
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) != "" {
		v := strings.TrimSpace(*in.ImageURL)
		if err := validation.ValidateImageRef(v); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		image = &v
	}
	if strings.TrimSpace(in.Content) == "" && image == nil {
		return nil, models.NewValidationError("A post needs text or an image")
	}
	if err := validation.ValidateLength("Content", in.Content, validation.MaxPostLength); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	rec := &repository.PostRecord{
		ID:        s.newID("post_"),
		AuthorID:  in.AuthorID,
		Content:   in.Content,
		ImageURL:  image,
		CreatedAt: s.now(),
		Likes:     repository.NewReactions(0),
		Thread:    thread.NewForest(thread.WithClock(s.now)),
	}
	if err := s.feed.Prepend(ctx, rec); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.ContentCreated.WithLabelValues(models.KindPost).Inc()

	post := renderPost(rec, in.AuthorID, repository.Lookup(ctx, s.users), s.now())
	publish(ctx, s.events, notifications.EventPostCreated, post)
	return post, nil
}

// CreatePoll prepends a poll with 2 to 5 non-empty options and no votes.
func (s *FeedService) CreatePoll(ctx context.Context, in CreatePollInput) (*models.Poll, error) {
	if _, err := s.users.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}
	if err := validation.ValidateText("Question", in.Question, validation.MaxQuestionLength); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	for _, opt := range in.Options {
		if err := validation.ValidateLength("Option", opt, validation.MaxOptionLength); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	ballot, err := poll.New(in.Question, in.Options)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	rec := &repository.PollRecord{
		ID:        s.newID("poll_"),
		AuthorID:  in.AuthorID,
		Question:  strings.TrimSpace(in.Question),
		CreatedAt: s.now(),
		Likes:     repository.NewReactions(0),
		Ballot:    ballot,
	}
	if err := s.feed.Prepend(ctx, rec); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.ContentCreated.WithLabelValues(models.KindPoll).Inc()

	p := renderPoll(rec, in.AuthorID, repository.Lookup(ctx, s.users), s.now())
	publish(ctx, s.events, notifications.EventPollCreated, p)
	return p, nil
}

func (s *FeedService) ListFeed(ctx context.Context, in ListFeedInput) (*models.FeedPage, error) {
	lookup := repository.Lookup(ctx, s.users)
	now := s.now()
	page := &models.FeedPage{Limit: in.Limit, Offset: in.Offset}

	total, err := s.feed.ViewPage(ctx, in.Limit, in.Offset, func(recs []repository.Record) error {
		page.Items = make([]models.ContentItem, 0, len(recs))
		for _, rec := range recs {
			page.Items = append(page.Items, renderRecord(rec, in.ViewerID, lookup, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	page.Total = total
	return page, nil
}

func (s *FeedService) GetItem(ctx context.Context, viewerID, id string) (models.ContentItem, error) {
	var item models.ContentItem
	err := s.feed.View(ctx, id, func(rec repository.Record) error {
		item = renderRecord(rec, viewerID, repository.Lookup(ctx, s.users), s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleLike likes or unlikes a post or poll for the viewer.
func (s *FeedService) ToggleLike(ctx context.Context, viewerID, id string) (models.ContentItem, error) {
	var item models.ContentItem
	var liked bool
	var likes int
	err := s.feed.Update(ctx, id, func(rec repository.Record) error {
		liked = rec.Reactions().Toggle(viewerID)
		likes = rec.Reactions().Likes
		item = renderRecord(rec, viewerID, repository.Lookup(ctx, s.users), s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.EventItemReactionUpdated, map[string]any{
		"item_id": id,
		"likes":   likes,
		"liked":   liked,
		"user_id": viewerID,
		"kind":    item.Kind(),
	})
	return item, nil
}
