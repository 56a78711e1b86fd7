package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"irysworld/internal/service"
)

// VoteRequest is the body of POST /api/polls/:id/votes.
type VoteRequest struct {
	OptionID string `json:"option_id"`
}

// Vote handles POST /api/polls/:id/votes
// @Summary Vote on a poll
// @Description Each viewer votes once. Later votes return the poll unchanged.
// @Tags polls
// @Accept json
// @Produce json
// @Param id path string true "Poll ID"
// @Param request body VoteRequest true "Vote"
// @Success 200 {object} models.Poll
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /polls/{id}/votes [post]
func (s *Server) Vote(c *fiber.Ctx) error {
	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	optionID := strings.TrimSpace(req.OptionID)
	if optionID == "" {
		return badRequest(c, "option_id is required")
	}

	p, err := s.pollService.Vote(c.UserContext(), service.VoteInput{
		PollID:   c.Params("id"),
		ViewerID: viewerID(c),
		OptionID: optionID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// GetTally handles GET /api/polls/:id/tally
// @Summary Live poll shares
// @Tags polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} models.PollTally
// @Router /polls/{id}/tally [get]
func (s *Server) GetTally(c *fiber.Ctx) error {
	tally, err := s.pollService.Tally(c.UserContext(), viewerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tally)
}
