package server

import (
	"github.com/gofiber/fiber/v2"

	"irysworld/internal/service"
)

// CreateStoryRequest is the body of POST /api/stories.
type CreateStoryRequest struct {
	ImageURL string `json:"image_url"`
}

// GetStories handles GET /api/stories
// @Summary List stories
// @Tags stories
// @Produce json
// @Success 200 {array} models.Story
// @Router /stories [get]
func (s *Server) GetStories(c *fiber.Ctx) error {
	stories, err := s.storyService.ListStories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stories)
}

// CreateStory handles POST /api/stories
func (s *Server) CreateStory(c *fiber.Ctx) error {
	var req CreateStoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	story, err := s.storyService.CreateStory(c.UserContext(), service.CreateStoryInput{
		AuthorID: viewerID(c),
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}
