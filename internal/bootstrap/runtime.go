package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"irysworld/internal/cache"
	"irysworld/internal/config"
	"irysworld/internal/repository"
	"irysworld/internal/seed"
)

// Options control runtime initialization behavior.
type Options struct {
	// SkipSeed starts with empty stores.
	SkipSeed bool
	// Now overrides the clock used to anchor seeded ages.
	Now func() time.Time
}

// Runtime holds the session state shared by the services.
type Runtime struct {
	Users   repository.UserRepository
	Feed    repository.FeedRepository
	Stories repository.StoryRepository
	Redis   *redis.Client
}

// InitRuntime builds fresh stores, loads the demo feed and connects Redis.
// Redis is optional; the returned Runtime.Redis may be nil.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	rt := &Runtime{
		Users:   repository.NewUserRepository(),
		Feed:    repository.NewFeedRepository(),
		Stories: repository.NewStoryRepository(),
	}

	if !opts.SkipSeed {
		fx, err := loadFixture(cfg)
		if err != nil {
			return nil, err
		}
		err = seed.Apply(ctx, fx, seed.Repos{Users: rt.Users, Feed: rt.Feed, Stories: rt.Stories}, seed.Options{
			Now:       opts.Now,
			FakePosts: cfg.SeedFakePosts,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed feed: %w", err)
		}
		if _, err := rt.Users.GetByID(ctx, cfg.ViewerID); err != nil {
			return nil, fmt.Errorf("viewer %q is not a seeded user: %w", cfg.ViewerID, err)
		}
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	rt.Redis = cache.GetClient()

	return rt, nil
}

func loadFixture(cfg *config.Config) (*seed.Fixture, error) {
	path := strings.TrimSpace(cfg.SeedFile)
	if path == "" {
		return seed.Default()
	}
	fx, err := seed.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed file %s: %w", path, err)
	}
	return fx, nil
}
