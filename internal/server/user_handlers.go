package server

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"irysworld/internal/service"
)

// UpdateProfileRequest is the body of PUT /api/me. Omit avatar_url to keep
// the current avatar.
type UpdateProfileRequest struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// GetMyProfile handles GET /api/me
// @Summary Current viewer profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Router /me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.UserContext(), viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/me
// @Summary Update name and avatar
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    viewerID(c),
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UploadMyAvatar handles POST /api/me/avatar
// @Summary Upload a profile picture
// @Description The image is cropped to a square, scaled down and stored on
// @Description the profile as a JPEG data URI.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Image"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /me/avatar [post]
func (s *Server) UploadMyAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return badRequest(c, "No file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}

	ctx := c.UserContext()
	dataURI, err := s.avatarService.Process(ctx, service.UploadAvatarInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondError(c, err)
	}

	current, err := s.userService.GetUser(ctx, viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:    current.ID,
		Name:      current.Name,
		AvatarURL: &dataURI,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
