package repository

import (
	"time"

	"irysworld/internal/models"
	"irysworld/internal/poll"
	"irysworld/internal/thread"
)

// Record is a stored feed entry: *PostRecord or *PollRecord.
type Record interface {
	RecordID() string
	Kind() string
	Reactions() *Reactions
}

// Reactions tracks likes per viewer. Likes never go below zero.
type Reactions struct {
	Likes   int
	likedBy map[string]struct{}
}

func NewReactions(likes int) *Reactions {
	return &Reactions{Likes: likes, likedBy: make(map[string]struct{})}
}

// LikedBy reports whether viewerID currently likes the item.
func (r *Reactions) LikedBy(viewerID string) bool {
	_, ok := r.likedBy[viewerID]
	return ok
}

// Toggle flips viewerID's like and returns the new state.
func (r *Reactions) Toggle(viewerID string) bool {
	if r.LikedBy(viewerID) {
		delete(r.likedBy, viewerID)
		if r.Likes > 0 {
			r.Likes--
		}
		return false
	}
	r.likedBy[viewerID] = struct{}{}
	r.Likes++
	return true
}

// PostRecord is a post with its comment forest.
type PostRecord struct {
	ID        string
	AuthorID  string
	Content   string
	ImageURL  *string
	CreatedAt time.Time
	Likes     *Reactions
	Thread    *thread.Forest
}

func (p *PostRecord) RecordID() string      { return p.ID }
func (p *PostRecord) Kind() string          { return models.KindPost }
func (p *PostRecord) Reactions() *Reactions { return p.Likes }

// PollRecord is a poll. Its discussion is only a counter.
type PollRecord struct {
	ID            string
	AuthorID      string
	Question      string
	CreatedAt     time.Time
	Likes         *Reactions
	CommentsCount int
	Ballot        *poll.Ballot
}

func (p *PollRecord) RecordID() string      { return p.ID }
func (p *PollRecord) Kind() string          { return models.KindPoll }
func (p *PollRecord) Reactions() *Reactions { return p.Likes }

// StoryRecord is a story in the reel.
type StoryRecord struct {
	ID        string
	AuthorID  string
	ImageURL  string
	CreatedAt time.Time
}
