package service

import (
	"context"
	"errors"
	"time"

	"irysworld/internal/models"
	"irysworld/internal/notifications"
	"irysworld/internal/observability"
	"irysworld/internal/poll"
	"irysworld/internal/repository"
)

type PollService struct {
	feed   repository.FeedRepository
	users  repository.UserRepository
	events EventPublisher
	now    func() time.Time
}

type VoteInput struct {
	PollID   string
	ViewerID string
	OptionID string
}

func NewPollService(feed repository.FeedRepository, users repository.UserRepository, events EventPublisher) *PollService {
	return &PollService{
		feed:   feed,
		users:  users,
		events: events,
		now:    time.Now,
	}
}

// Vote casts the viewer's single vote. Voting again returns the poll
// unchanged; an unknown option is a validation error and does not use up the vote.
func (s *PollService) Vote(ctx context.Context, in VoteInput) (*models.Poll, error) {
	var out *models.Poll
	var changed bool
	err := s.feed.Update(ctx, in.PollID, func(rec repository.Record) error {
		p, err := asPoll(rec)
		if err != nil {
			return err
		}
		changed, err = p.Ballot.CastVote(in.ViewerID, in.OptionID)
		if errors.Is(err, poll.ErrUnknownOption) {
			observability.PollVotes.WithLabelValues("rejected").Inc()
			return models.NewValidationError("Unknown poll option " + in.OptionID)
		}
		if err != nil {
			return err
		}
		out = renderPoll(p, in.ViewerID, repository.Lookup(ctx, s.users), s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !changed {
		observability.PollVotes.WithLabelValues("ignored").Inc()
		return out, nil
	}
	observability.PollVotes.WithLabelValues("accepted").Inc()
	publish(ctx, s.events, notifications.EventPollVoted, map[string]any{
		"poll_id":     in.PollID,
		"options":     out.Options,
		"total_votes": out.TotalVotes,
	})
	return out, nil
}

// Tally returns the live shares and the viewer's choice.
func (s *PollService) Tally(ctx context.Context, viewerID, pollID string) (*models.PollTally, error) {
	var out *models.PollTally
	err := s.feed.View(ctx, pollID, func(rec repository.Record) error {
		p, err := asPoll(rec)
		if err != nil {
			return err
		}
		out = renderTally(p, viewerID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func asPoll(rec repository.Record) (*repository.PollRecord, error) {
	p, ok := rec.(*repository.PollRecord)
	if !ok {
		return nil, models.NewValidationError("Item is not a poll")
	}
	return p, nil
}
