// Package server contains the HTTP and WebSocket handlers of the feed API.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"

	_ "irysworld/docs" // swagger docs
	"irysworld/internal/bootstrap"
	"irysworld/internal/config"
	"irysworld/internal/featureflags"
	"irysworld/internal/middleware"
	"irysworld/internal/models"
	"irysworld/internal/notifications"
	"irysworld/internal/service"
	"irysworld/internal/suggest"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	hub            *notifications.Hub
	events         *notifications.Broadcaster
	featureFlags   *featureflags.Manager

	feedService       *service.FeedService
	commentService    *service.CommentService
	pollService       *service.PollService
	userService       *service.UserService
	storyService      *service.StoryService
	avatarService     *service.AvatarService
	suggestionService *service.SuggestionService
}

// NewServer seeds a fresh session, connects Redis and builds the Gemini
// generator from cfg.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return nil, fmt.Errorf("runtime init failed: %w", err)
	}
	gen, err := suggest.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, rt, gen), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
func NewServerWithDeps(cfg *config.Config, rt *bootstrap.Runtime, gen suggest.Generator) *Server {
	hub := notifications.NewHub()
	events := notifications.NewBroadcaster(hub, notifications.NewNotifier(rt.Redis))
	flags := featureflags.NewManager(cfg.FeatureFlags)

	return &Server{
		config:         cfg,
		redis:          rt.Redis,
		promMiddleware: middleware.InitMetrics("irys-api"),
		hub:            hub,
		events:         events,
		featureFlags:   flags,

		feedService:       service.NewFeedService(rt.Feed, rt.Users, events),
		commentService:    service.NewCommentService(rt.Feed, rt.Users, events),
		pollService:       service.NewPollService(rt.Feed, rt.Users, events),
		userService:       service.NewUserService(rt.Users, events),
		storyService:      service.NewStoryService(rt.Stories, rt.Users, events),
		avatarService:     service.NewAvatarService(cfg),
		suggestionService: service.NewSuggestionService(gen, rt.Redis, flags, cfg.SuggestionCacheTTL(), cfg.SuggestionTimeout()),
	}
}

// NewApp builds the fiber app with the shared error handler.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Irys World API",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// The viewer and the trace must be bound before the context middleware copies them.
	app.Use(middleware.Viewer(s.config.ViewerID))
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so browsers still see CORS headers on 429s.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		MaxAge:       86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Irys World Metrics Dashboard",
	}))

	api.Get("/swagger/*", swagger.HandlerDefault)

	me := api.Group("/me")
	me.Get("/", s.GetMyProfile)
	me.Put("/", s.UpdateMyProfile)
	me.Post("/avatar", middleware.RateLimit(s.redis, 10, time.Minute, "avatar"), s.UploadMyAvatar)

	users := api.Group("/users")
	users.Get("/", s.GetAllUsers)
	users.Get("/:id", s.GetUserProfile)

	stories := api.Group("/stories")
	stories.Get("/", s.GetStories)
	stories.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_story"), s.CreateStory)

	api.Get("/feed", s.GetFeed)

	items := api.Group("/items")
	items.Post("/:id/like", s.ToggleLike)
	items.Get("/:id", s.GetItem)

	// Specific /:id/:resource routes before generic ones.
	posts := api.Group("/posts")
	posts.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", middleware.RateLimit(s.redis, 30, time.Minute, "create_comment"), s.CreateComment)
	posts.Post("/:id/comments/:commentId/replies", middleware.RateLimit(s.redis, 30, time.Minute, "create_comment"), s.CreateReply)

	polls := api.Group("/polls")
	polls.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_poll"), s.CreatePoll)
	polls.Post("/:id/votes", s.Vote)
	polls.Get("/:id/tally", s.GetTally)

	api.Post("/suggestions", middleware.RateLimit(s.redis, s.config.SuggestionRateLimit, time.Minute, "suggestion"), s.CreateSuggestion)

	api.Get("/feature-flags", s.GetFeatureFlags)

	api.Get("/ws", s.WebsocketHandler())
}

// Start listens on the configured port until Shutdown is called.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.NewApp()

	if err := s.events.Start(s.shutdownCtx); err != nil {
		log.Printf("failed to start %s wiring: %v", s.hub.Name(), err)
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		log.Printf("error shutting down %s: %v", s.hub.Name(), err)
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
