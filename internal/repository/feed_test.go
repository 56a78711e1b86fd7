package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irysworld/internal/models"
	"irysworld/internal/thread"
)

func newPost(id string) *PostRecord {
	return &PostRecord{ID: id, AuthorID: "u1", Content: id, Likes: NewReactions(0), Thread: thread.NewForest()}
}

func pageIDs(t *testing.T, repo FeedRepository, limit, offset int) ([]string, int) {
	t.Helper()
	var ids []string
	total, err := repo.ViewPage(context.Background(), limit, offset, func(recs []Record) error {
		for _, r := range recs {
			ids = append(ids, r.RecordID())
		}
		return nil
	})
	require.NoError(t, err)
	return ids, total
}

func TestFeedRepository_PrependOrdersNewestFirst(t *testing.T) {
	repo := NewFeedRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, newPost("p1")))
	require.NoError(t, repo.Append(ctx, newPost("p2")))
	require.NoError(t, repo.Prepend(ctx, newPost("new")))

	ids, total := pageIDs(t, repo, 0, 0)
	assert.Equal(t, []string{"new", "p1", "p2"}, ids)
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, repo.Count(ctx))

	assert.Error(t, repo.Prepend(ctx, newPost("p1")))
}

func TestFeedRepository_ViewPage(t *testing.T) {
	repo := NewFeedRepository()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Append(ctx, newPost(id)))
	}

	ids, total := pageIDs(t, repo, 2, 1)
	assert.Equal(t, []string{"b", "c"}, ids)
	assert.Equal(t, 4, total)

	ids, _ = pageIDs(t, repo, 10, 3)
	assert.Equal(t, []string{"d"}, ids)

	ids, _ = pageIDs(t, repo, 10, 9)
	assert.Empty(t, ids)

	ids, _ = pageIDs(t, repo, 2, -5)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestFeedRepository_UpdateAndView(t *testing.T) {
	repo := NewFeedRepository()
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, newPost("p1")))

	err := repo.Update(ctx, "p1", func(r Record) error {
		r.Reactions().Toggle("u2")
		return nil
	})
	require.NoError(t, err)

	err = repo.View(ctx, "p1", func(r Record) error {
		assert.Equal(t, 1, r.Reactions().Likes)
		assert.Equal(t, models.KindPost, r.Kind())
		return nil
	})
	require.NoError(t, err)

	sentinel := errors.New("stop")
	assert.ErrorIs(t, repo.Update(ctx, "p1", func(Record) error { return sentinel }), sentinel)

	err = repo.View(ctx, "missing", func(Record) error { return nil })
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	err = repo.Update(ctx, "missing", func(Record) error { return nil })
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestReactions_Toggle(t *testing.T) {
	r := NewReactions(132)

	assert.True(t, r.Toggle("u1"))
	assert.Equal(t, 133, r.Likes)
	assert.True(t, r.LikedBy("u1"))

	assert.False(t, r.Toggle("u1"))
	assert.Equal(t, 132, r.Likes)
	assert.False(t, r.LikedBy("u1"))

	zero := NewReactions(0)
	zero.likedBy["u9"] = struct{}{}
	zero.Toggle("u9")
	assert.Equal(t, 0, zero.Likes)
}
