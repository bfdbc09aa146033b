package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/draughts-backend/internal/middleware"
	"github.com/benbeisheim/draughts-backend/internal/model"
	"github.com/benbeisheim/draughts-backend/internal/service"
	"github.com/benbeisheim/draughts-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves one player's game socket until it closes. The
// game's broadcasts and this read loop both write to the socket, so every
// write goes through the same SyncConn.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, playerID := middleware.SocketIdentity(c)
	logger := log.With().Str("game", gameID).Str("player", playerID).Logger()
	conn := model.NewSyncConn(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		logger.Warn().Err(err).Msg("failed to register connection")
		_ = conn.WriteJSON(ws.NewErrorMessage(err.Error()))
		conn.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("read error")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug().Err(err).Msg("parse error")
			_ = conn.WriteJSON(ws.NewErrorMessage("malformed message"))
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			_ = conn.WriteJSON(ws.NewErrorMessage(err.Error()))
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.Move
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)
	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking keeps the socket open until the player is matched, then
// forwards the match and closes.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	_, playerID := middleware.SocketIdentity(c)
	ch := make(chan string, 1)

	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		_ = c.WriteJSON(ws.NewErrorMessage(err.Error()))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		_ = c.WriteJSON(ws.NewErrorMessage(err.Error()))
		return
	}

	// The reader notices the client going away while we wait.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			return
		}
		if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)}); err != nil {
			log.Warn().Err(err).Str("player", playerID).Msg("failed to send match")
		}
	case <-closed:
	}
}
