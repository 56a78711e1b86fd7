package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irysworld/internal/models"
)

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Name: "Aria"}))
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u2", Name: "Jax"}))
	assert.Error(t, repo.Create(ctx, &models.User{ID: "u1", Name: "Again"}))
	assert.True(t, models.HasCode(repo.Create(ctx, &models.User{}), models.CodeValidation))

	u, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Aria", u.Name)

	u.Name = "mutated copy"
	again, _ := repo.GetByID(ctx, "u1")
	assert.Equal(t, "Aria", again.Name)

	require.NoError(t, repo.Update(ctx, &models.User{ID: "u1", Name: "Aria Nova", AvatarURL: "a.png"}))
	lookup := Lookup(ctx, repo)
	got, ok := lookup("u1")
	assert.True(t, ok)
	assert.Equal(t, "Aria Nova", got.Name)
	_, ok = lookup("nobody")
	assert.False(t, ok)

	err = repo.Update(ctx, &models.User{ID: "ghost"})
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "u1", list[0].ID)
	assert.Equal(t, "u2", list[1].ID)
}

func TestStoryRepository(t *testing.T) {
	repo := NewStoryRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Append(ctx, &StoryRecord{ID: "s_u1", AuthorID: "u1", CreatedAt: now}))
	require.NoError(t, repo.Append(ctx, &StoryRecord{ID: "s_u2", AuthorID: "u2", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &StoryRecord{ID: "s_new", AuthorID: "u1", CreatedAt: now}))
	assert.Error(t, repo.Create(ctx, &StoryRecord{ID: "s_u1"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "s_new", list[0].ID)
	assert.Equal(t, "s_u2", list[2].ID)
}
