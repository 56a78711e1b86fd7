// Package service holds the application's use cases. Services validate input,
// drive the thread and poll engines through the repositories, and publish
// feed events.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"irysworld/internal/models"
	"irysworld/internal/repository"
)

// EventPublisher delivers live feed events. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

func publish(ctx context.Context, events EventPublisher, eventType string, payload any) {
	if events != nil {
		events.Publish(ctx, eventType, payload)
	}
}

func renderRecord(rec repository.Record, viewerID string, lookup models.UserLookup, now time.Time) models.ContentItem {
	switch r := rec.(type) {
	case *repository.PostRecord:
		return renderPost(r, viewerID, lookup, now)
	case *repository.PollRecord:
		return renderPoll(r, viewerID, lookup, now)
	default:
		return nil
	}
}

func renderPost(rec *repository.PostRecord, viewerID string, lookup models.UserLookup, now time.Time) *models.Post {
	var image *string
	if rec.ImageURL != nil {
		v := *rec.ImageURL
		image = &v
	}
	return &models.Post{
		Type:          models.KindPost,
		ID:            rec.ID,
		User:          models.ResolveUser(lookup, rec.AuthorID),
		Content:       rec.Content,
		ImageURL:      image,
		Likes:         rec.Likes.Likes,
		Liked:         rec.Likes.LikedBy(viewerID),
		CommentsCount: rec.Thread.CountAll(),
		Comments:      rec.Thread.Tree(lookup),
		CreatedAt:     rec.CreatedAt,
		TimeAgo:       models.TimeAgo(rec.CreatedAt, now),
	}
}

func renderPoll(rec *repository.PollRecord, viewerID string, lookup models.UserLookup, now time.Time) *models.Poll {
	t := renderTally(rec, viewerID)
	return &models.Poll{
		Type:          models.KindPoll,
		ID:            rec.ID,
		User:          models.ResolveUser(lookup, rec.AuthorID),
		Question:      rec.Question,
		Options:       rec.Ballot.Options(),
		Likes:         rec.Likes.Likes,
		Liked:         rec.Likes.LikedBy(viewerID),
		CommentsCount: rec.CommentsCount,
		VotedOptionID: t.VotedOptionID,
		TotalVotes:    t.TotalVotes,
		Tally:         t.Tally,
		CreatedAt:     rec.CreatedAt,
		TimeAgo:       models.TimeAgo(rec.CreatedAt, now),
	}
}

func renderTally(rec *repository.PollRecord, viewerID string) *models.PollTally {
	out := &models.PollTally{
		PollID:     rec.ID,
		TotalVotes: rec.Ballot.TotalVotes(),
		Tally:      rec.Ballot.Tally(),
	}
	if id, ok := rec.Ballot.VotedOption(viewerID); ok {
		out.VotedOptionID = &id
	}
	return out
}
