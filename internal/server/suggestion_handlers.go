package server

import (
	"github.com/gofiber/fiber/v2"

	"irysworld/internal/service"
)

// SuggestionRequest is the body of POST /api/suggestions.
type SuggestionRequest struct {
	Prompt string `json:"prompt"`
}

// CreateSuggestion handles POST /api/suggestions
// @Summary Draft a post from an idea
// @Description Asks the configured model for a post draft. Nothing in the
// @Description feed changes, whatever the outcome.
// @Tags suggestions
// @Accept json
// @Produce json
// @Param request body SuggestionRequest true "Idea"
// @Success 200 {object} models.Suggestion
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /suggestions [post]
func (s *Server) CreateSuggestion(c *fiber.Ctx) error {
	var req SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	out, err := s.suggestionService.Suggest(c.UserContext(), service.SuggestInput{
		ViewerID: viewerID(c),
		Prompt:   req.Prompt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
