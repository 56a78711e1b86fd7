package server

import (
	"github.com/gofiber/fiber/v2"

	"irysworld/internal/service"
)

// CommentRequest is the body of comment and reply submissions.
type CommentRequest struct {
	Content string `json:"content"`
}

// GetComments handles GET /api/posts/:id/comments
// @Summary List the comment thread of a post
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.CommentThread
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	thread, err := s.commentService.ListComments(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(thread)
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Add a top-level comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} models.CommentThread
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	thread, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		PostID:   c.Params("id"),
		AuthorID: viewerID(c),
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(thread)
}

// CreateReply handles POST /api/posts/:id/comments/:commentId/replies
// @Summary Reply to a comment at any depth
// @Description Replying to a comment that does not exist changes nothing and
// @Description returns the thread with "created" set to null.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param commentId path string true "Parent comment ID"
// @Param request body CommentRequest true "Reply"
// @Success 201 {object} models.CommentThread
// @Success 200 {object} models.CommentThread
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/{id}/comments/{commentId}/replies [post]
func (s *Server) CreateReply(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	thread, err := s.commentService.AddReply(c.UserContext(), service.AddReplyInput{
		PostID:   c.Params("id"),
		ParentID: c.Params("commentId"),
		AuthorID: viewerID(c),
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	if thread.Created == nil {
		return c.JSON(thread)
	}
	return c.Status(fiber.StatusCreated).JSON(thread)
}
