// Package repository provides the in-memory stores backing a viewing session.
package repository

import (
	"context"
	"fmt"
	"sync"

	"irysworld/internal/models"
	"irysworld/internal/observability"
)

// FeedRepository holds the ordered feed, newest first. Callbacks run while
// the store lock is held and must not call back into the repository.
type FeedRepository interface {
	Prepend(ctx context.Context, rec Record) error
	Append(ctx context.Context, rec Record) error
	View(ctx context.Context, id string, fn func(Record) error) error
	Update(ctx context.Context, id string, fn func(Record) error) error
	ViewPage(ctx context.Context, limit, offset int, fn func([]Record) error) (int, error)
	Count(ctx context.Context) int
}

type feedRepository struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]Record
	logger *observability.RepoLogger
}

// NewFeedRepository creates an empty feed store.
func NewFeedRepository() FeedRepository {
	return &feedRepository{
		byID:   make(map[string]Record),
		logger: observability.NewRepoLogger("feed"),
	}
}

func (r *feedRepository) Prepend(ctx context.Context, rec Record) error {
	return r.insert(ctx, rec, true)
}

// Append adds rec at the end of the feed. Used when loading seed data in display order.
func (r *feedRepository) Append(ctx context.Context, rec Record) error {
	return r.insert(ctx, rec, false)
}

func (r *feedRepository) insert(ctx context.Context, rec Record, front bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rec.RecordID()
	if _, exists := r.byID[id]; exists {
		err := fmt.Errorf("feed item %s already exists", id)
		r.logger.LogError(ctx, err, "create")
		return err
	}
	r.byID[id] = rec
	if front {
		r.order = append([]string{id}, r.order...)
	} else {
		r.order = append(r.order, id)
	}
	r.logger.LogCreate(ctx, map[string]any{"id": id, "kind": rec.Kind()})
	return nil
}

func (r *feedRepository) View(_ context.Context, id string, fn func(Record) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return models.NewNotFoundError("Item", id)
	}
	return fn(rec)
}

func (r *feedRepository) Update(ctx context.Context, id string, fn func(Record) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return models.NewNotFoundError("Item", id)
	}
	if err := fn(rec); err != nil {
		return err
	}
	r.logger.LogUpdate(ctx, map[string]any{"id": id, "kind": rec.Kind()})
	return nil
}

// ViewPage passes the records in [offset, offset+limit) to fn and returns the total size.
func (r *feedRepository) ViewPage(_ context.Context, limit, offset int, fn func([]Record) error) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}

	page := make([]Record, 0, end-start)
	for _, id := range r.order[start:end] {
		page = append(page, r.byID[id])
	}
	return total, fn(page)
}

func (r *feedRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
