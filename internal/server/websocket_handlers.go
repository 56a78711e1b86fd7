package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"irysworld/internal/featureflags"
	"irysworld/internal/models"
)

// WebsocketHandler streams feed events to the viewer. It is gated by the
// live_feed flag.
func (s *Server) WebsocketHandler() fiber.Handler {
	upgrade := websocket.New(func(conn *websocket.Conn) {
		vid, _ := conn.Locals("userID").(string)
		if vid == "" {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		client, err := s.hub.Register(vid, conn)
		if err != nil {
			log.Printf("WebSocket feed: failed to register viewer %s: %v", vid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		defer s.hub.UnregisterClient(client)

		go client.WritePump()
		client.ReadPump()
	})

	return func(c *fiber.Ctx) error {
		if !s.featureFlags.Enabled(featureflags.LiveFeed, viewerID(c)) {
			return models.RespondWithError(c, fiber.StatusServiceUnavailable,
				models.NewUnavailableError("Live feed is disabled"))
		}
		if !websocket.IsWebSocketUpgrade(c) {
			return c.Status(fiber.StatusUpgradeRequired).JSON(models.ErrorResponse{
				Error: "WebSocket upgrade required",
			})
		}
		return upgrade(c)
	}
}
