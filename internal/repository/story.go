package repository

import (
	"context"
	"fmt"
	"sync"

	"irysworld/internal/observability"
)

// StoryRepository holds the story reel, newest first.
type StoryRepository interface {
	Create(ctx context.Context, story *StoryRecord) error
	Append(ctx context.Context, story *StoryRecord) error
	List(ctx context.Context) ([]*StoryRecord, error)
}

type storyRepository struct {
	mu      sync.RWMutex
	stories []*StoryRecord
	ids     map[string]struct{}
	logger  *observability.RepoLogger
}

func NewStoryRepository() StoryRepository {
	return &storyRepository{
		ids:    make(map[string]struct{}),
		logger: observability.NewRepoLogger("stories"),
	}
}

// Create puts story at the front of the reel.
func (r *storyRepository) Create(ctx context.Context, story *StoryRecord) error {
	return r.insert(ctx, story, true)
}

// Append adds story at the end of the reel, for seeding in display order.
func (r *storyRepository) Append(ctx context.Context, story *StoryRecord) error {
	return r.insert(ctx, story, false)
}

func (r *storyRepository) insert(ctx context.Context, story *StoryRecord, front bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[story.ID]; exists {
		err := fmt.Errorf("story %s already exists", story.ID)
		r.logger.LogError(ctx, err, "create")
		return err
	}
	cp := *story
	r.ids[story.ID] = struct{}{}
	if front {
		r.stories = append([]*StoryRecord{&cp}, r.stories...)
	} else {
		r.stories = append(r.stories, &cp)
	}
	r.logger.LogCreate(ctx, map[string]any{"id": story.ID, "author_id": story.AuthorID})
	return nil
}

func (r *storyRepository) List(_ context.Context) ([]*StoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*StoryRecord, len(r.stories))
	for i, s := range r.stories {
		cp := *s
		out[i] = &cp
	}
	return out, nil
}
