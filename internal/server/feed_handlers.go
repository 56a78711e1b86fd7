package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"irysworld/internal/service"
)

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

// CreatePollRequest is the body of POST /api/polls.
type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// GetFeed handles GET /api/feed
// @Summary List the feed
// @Description Posts and polls, newest first.
// @Tags feed
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} models.FeedPage
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	out, err := s.feedService.ListFeed(c.UserContext(), service.ListFeedInput{
		ViewerID: viewerID(c),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags feed
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	in := service.CreatePostInput{AuthorID: viewerID(c), Content: req.Content}
	if image := strings.TrimSpace(req.ImageURL); image != "" {
		in.ImageURL = &image
	}

	post, err := s.feedService.CreatePost(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// CreatePoll handles POST /api/polls
// @Summary Create a poll
// @Description A question with 2 to 5 options.
// @Tags feed
// @Accept json
// @Produce json
// @Param request body CreatePollRequest true "Poll"
// @Success 201 {object} models.Poll
// @Failure 400 {object} models.ErrorResponse
// @Router /polls [post]
func (s *Server) CreatePoll(c *fiber.Ctx) error {
	var req CreatePollRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	p, err := s.feedService.CreatePoll(c.UserContext(), service.CreatePollInput{
		AuthorID: viewerID(c),
		Question: req.Question,
		Options:  req.Options,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetItem handles GET /api/items/:id
func (s *Server) GetItem(c *fiber.Ctx) error {
	item, err := s.feedService.GetItem(c.UserContext(), viewerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// ToggleLike handles POST /api/items/:id/like
// @Summary Like or unlike a post or poll
// @Tags feed
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	item, err := s.feedService.ToggleLike(c.UserContext(), viewerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
