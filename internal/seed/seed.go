package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"irysworld/internal/models"
	"irysworld/internal/poll"
	"irysworld/internal/repository"
	"irysworld/internal/thread"
)

// Repos are the stores a fixture is loaded into.
type Repos struct {
	Users   repository.UserRepository
	Feed    repository.FeedRepository
	Stories repository.StoryRepository
}

// Options control how a fixture is applied.
type Options struct {
	// Now anchors relative ages and becomes the clock of seeded threads.
	Now func() time.Time
	// FakePosts appends this many generated posts after the fixture items.
	FakePosts int
}

// Apply loads users, stories and feed items in fixture order.
func Apply(ctx context.Context, fx *Fixture, repos Repos, opts Options) error {
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	now := clock()

	known := make(map[string]bool, len(fx.Users))
	for _, u := range fx.Users {
		user := models.User{ID: u.ID, Name: u.Name, AvatarURL: u.Avatar}
		if err := repos.Users.Create(ctx, &user); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
		known[u.ID] = true
	}

	for _, s := range fx.Stories {
		if !known[s.User] {
			return fmt.Errorf("seed story %s: unknown user %s", s.ID, s.User)
		}
		created, err := parseAge(s.Age, now)
		if err != nil {
			return fmt.Errorf("seed story %s: %w", s.ID, err)
		}
		rec := &repository.StoryRecord{ID: s.ID, AuthorID: s.User, ImageURL: s.Image, CreatedAt: created}
		if err := repos.Stories.Append(ctx, rec); err != nil {
			return fmt.Errorf("seed story %s: %w", s.ID, err)
		}
	}

	for _, item := range fx.Items {
		if !known[item.User] {
			return fmt.Errorf("seed item %s: unknown user %s", item.ID, item.User)
		}
		rec, err := buildItem(item, known, now, clock)
		if err != nil {
			return fmt.Errorf("seed item %s: %w", item.ID, err)
		}
		if err := repos.Feed.Append(ctx, rec); err != nil {
			return fmt.Errorf("seed item %s: %w", item.ID, err)
		}
	}

	if opts.FakePosts > 0 {
		if err := appendFakePosts(ctx, repos, fx.Users, opts.FakePosts, now, clock); err != nil {
			return err
		}
	}

	log.Printf("seed: loaded %d users, %d stories, %d items", len(fx.Users), len(fx.Stories), repos.Feed.Count(ctx))
	return nil
}

func buildItem(item ItemSpec, known map[string]bool, now time.Time, clock func() time.Time) (repository.Record, error) {
	created, err := parseAge(item.Age, now)
	if err != nil {
		return nil, err
	}

	switch item.Type {
	case models.KindPost:
		forest := thread.NewForest(thread.WithClock(clock))
		if err := loadComments(forest, "", item.Comments, known, now); err != nil {
			return nil, err
		}
		var image *string
		if item.Image != "" {
			v := item.Image
			image = &v
		}
		return &repository.PostRecord{
			ID:        item.ID,
			AuthorID:  item.User,
			Content:   item.Content,
			ImageURL:  image,
			CreatedAt: created,
			Likes:     repository.NewReactions(item.Likes),
			Thread:    forest,
		}, nil

	case models.KindPoll:
		ballot, err := poll.FromOptions(item.Options)
		if err != nil {
			return nil, err
		}
		return &repository.PollRecord{
			ID:            item.ID,
			AuthorID:      item.User,
			Question:      item.Question,
			CreatedAt:     created,
			Likes:         repository.NewReactions(item.Likes),
			CommentsCount: item.CommentsCount,
			Ballot:        ballot,
		}, nil

	default:
		return nil, fmt.Errorf("unknown item type %q", item.Type)
	}
}

func loadComments(forest *thread.Forest, parentID string, specs []CommentSpec, known map[string]bool, now time.Time) error {
	for _, c := range specs {
		if !known[c.User] {
			return fmt.Errorf("comment %s: unknown user %s", c.ID, c.User)
		}
		created, err := parseAge(c.Age, now)
		if err != nil {
			return fmt.Errorf("comment %s: %w", c.ID, err)
		}
		if err := forest.Load(parentID, thread.Comment{ID: c.ID, AuthorID: c.User, Text: c.Content, CreatedAt: created}); err != nil {
			return err
		}
		if err := loadComments(forest, c.ID, c.Replies, known, now); err != nil {
			return err
		}
	}
	return nil
}

// appendFakePosts adds n generated posts older than anything in the fixture,
// newest first.
func appendFakePosts(ctx context.Context, repos Repos, users []UserSpec, n int, now time.Time, clock func() time.Time) error {
	if len(users) == 0 {
		return fmt.Errorf("seed: generated posts need at least one user")
	}
	gofakeit.Seed(now.UnixNano())
	r := rand.New(rand.NewSource(now.UnixNano()))

	age := 48 * time.Hour
	for i := 0; i < n; i++ {
		age += time.Duration(1+r.Intn(12))*time.Hour + time.Duration(r.Intn(60))*time.Minute
		author := users[r.Intn(len(users))]

		var image *string
		if r.Intn(2) == 0 {
			v := fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID())
			image = &v
		}

		forest := thread.NewForest(thread.WithClock(clock))
		for j := r.Intn(3); j > 0; j-- {
			commenter := users[r.Intn(len(users))]
			if err := forest.Load("", thread.Comment{
				ID:        "c_" + uuid.NewString(),
				AuthorID:  commenter.ID,
				Text:      gofakeit.Sentence(6 + r.Intn(8)),
				CreatedAt: now.Add(-age + time.Duration(j)*time.Minute),
			}); err != nil {
				return err
			}
		}

		rec := &repository.PostRecord{
			ID:        "post_" + uuid.NewString(),
			AuthorID:  author.ID,
			Content:   fmt.Sprintf("%s #%s", gofakeit.HipsterSentence(8+r.Intn(10)), gofakeit.HipsterWord()),
			ImageURL:  image,
			CreatedAt: now.Add(-age),
			Likes:     repository.NewReactions(r.Intn(300)),
			Thread:    forest,
		}
		if err := repos.Feed.Append(ctx, rec); err != nil {
			return fmt.Errorf("seed generated post: %w", err)
		}
	}
	return nil
}
