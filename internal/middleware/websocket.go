package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

const (
	localSocketGameID   = "wsGameID"
	localSocketPlayerID = "wsPlayerID"
)

// WebSocketUpgrade rejects anything but an upgrade request and pins the game
// and player IDs into locals, which are all an upgraded connection can read.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		playerID := PlayerID(c)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// Route params share the request buffer too.
		c.Locals(localSocketGameID, utils.CopyString(c.Params("gameId")))
		c.Locals(localSocketPlayerID, playerID)
		return c.Next()
	}
}

// SocketIdentity returns the IDs WebSocketUpgrade stored for conn. The game ID
// is empty on routes without a :gameId param.
func SocketIdentity(conn *websocket.Conn) (gameID, playerID string) {
	gameID, _ = conn.Locals(localSocketGameID).(string)
	playerID, _ = conn.Locals(localSocketPlayerID).(string)
	return gameID, playerID
}
