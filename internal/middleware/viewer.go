package middleware

import "github.com/gofiber/fiber/v2"

// Viewer binds every request to the single local viewer of this session.
func Viewer(viewerID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", viewerID)
		return c.Next()
	}
}

// ViewerID returns the viewer bound by Viewer, or "".
func ViewerID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}
