package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"irysworld/internal/models"
	"irysworld/internal/poll"
	"irysworld/internal/repository"
	"irysworld/internal/thread"
)

var testNow = time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

type publishedEvent struct {
	Type    string
	Payload any
}

// recordingPublisher captures events instead of delivering them.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn  func(context.Context, *models.User) error
	getByIDFn func(context.Context, string) (*models.User, error)
	listFn    func(context.Context) ([]*models.User, error)
	updateFn  func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context) ([]*models.User, error) { return s.listFn(ctx) }
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }

type fixture struct {
	users   repository.UserRepository
	feed    repository.FeedRepository
	stories repository.StoryRepository
	events  *recordingPublisher
}

// newFixture seeds two users, post p1 with thread c1 -> c2 and c3, and a poll
// with 100/50 votes.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		users:   repository.NewUserRepository(),
		feed:    repository.NewFeedRepository(),
		stories: repository.NewStoryRepository(),
		events:  &recordingPublisher{},
	}
	require.NoError(t, f.users.Create(ctx, &models.User{ID: "u1", Name: "Aria", AvatarURL: "https://picsum.photos/seed/u1/100/100"}))
	require.NoError(t, f.users.Create(ctx, &models.User{ID: "u2", Name: "Jax", AvatarURL: "https://picsum.photos/seed/u2/100/100"}))

	n := 0
	forest := thread.NewForest(
		thread.WithClock(clock),
		thread.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("c_new%d", n)
		}),
	)
	old := testNow.Add(-2 * time.Hour)
	require.NoError(t, forest.Load("", thread.Comment{ID: "c1", AuthorID: "u2", Text: "Wow", CreatedAt: old}))
	require.NoError(t, forest.Load("c1", thread.Comment{ID: "c2", AuthorID: "u1", Text: "Thanks", CreatedAt: old}))
	require.NoError(t, forest.Load("", thread.Comment{ID: "c3", AuthorID: "u1", Text: "Later", CreatedAt: old}))

	image := "https://picsum.photos/seed/p1/600/400"
	require.NoError(t, f.feed.Append(ctx, &repository.PostRecord{
		ID: "p1", AuthorID: "u2", Content: "Nebula", ImageURL: &image,
		CreatedAt: old, Likes: repository.NewReactions(132), Thread: forest,
	}))

	ballot, err := pollFromCounts(100, 50)
	require.NoError(t, err)
	require.NoError(t, f.feed.Append(ctx, &repository.PollRecord{
		ID: "poll1", AuthorID: "u1", Question: "A or B?",
		CreatedAt: old, Likes: repository.NewReactions(45), CommentsCount: 23, Ballot: ballot,
	}))
	return f
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.CodeValidation), "expected validation error, got %v", err)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.CodeNotFound), "expected not found error, got %v", err)
}

func pollFromCounts(a, b int) (*poll.Ballot, error) {
	return poll.FromOptions([]models.PollOption{
		{ID: "opt1", Text: "A", Votes: a},
		{ID: "opt2", Text: "B", Votes: b},
	})
}
