package repository

import (
	"context"
	"fmt"
	"sync"

	"irysworld/internal/models"
	"irysworld/internal/observability"
)

// UserRepository defines the interface for user profile operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]models.User
	logger *observability.RepoLogger
}

func NewUserRepository() UserRepository {
	return &userRepository{
		byID:   make(map[string]models.User),
		logger: observability.NewRepoLogger("users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		return models.NewValidationError("User ID is required")
	}
	if _, exists := r.byID[user.ID]; exists {
		err := fmt.Errorf("user %s already exists", user.ID)
		r.logger.LogError(ctx, err, "create")
		return err
	}
	r.byID[user.ID] = *user
	r.order = append(r.order, user.ID)
	r.logger.LogCreate(ctx, map[string]any{"id": user.ID})
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return &u, nil
}

func (r *userRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.byID[id]
		out = append(out, &u)
	}
	return out, nil
}

// Update replaces the stored profile wholesale.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return models.NewNotFoundError("User", user.ID)
	}
	r.byID[user.ID] = *user
	r.logger.LogUpdate(ctx, map[string]any{"id": user.ID})
	return nil
}

// Lookup adapts a UserRepository for rendering authors.
func Lookup(ctx context.Context, repo UserRepository) models.UserLookup {
	return func(id string) (models.User, bool) {
		u, err := repo.GetByID(ctx, id)
		if err != nil {
			return models.User{}, false
		}
		return *u, true
	}
}
