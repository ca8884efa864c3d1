package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/chessgame-backend/internal/service"
	"github.com/benbeisheim/chessgame-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("game %s: failed to register connection for %s: %v", gameID, playerID, err)
		wsc.sendError(gameID, c, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("game %s: read error for %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(gameID, c, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(gameID, c, err)
		}
	}
}

// handleMessage dispatches one inbound message. Successful commands reach the
// client through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var p ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, err := wsc.gameService.SelectSquare(gameID, playerID, p.Square)
		return err
	case ws.MessageTypeMove:
		var p ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, p.From, p.To)
		return err
	case ws.MessageTypeClick:
		var p ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleClick(gameID, playerID, p.Square)
		return err
	case ws.MessageTypeNewGame:
		_, err := wsc.gameService.NewGame(gameID, playerID)
		return err
	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID, playerID)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID string, c *websocket.Conn, err error) {
	if werr := wsc.gameService.SendError(gameID, c, err); werr != nil {
		log.Printf("game %s: failed to send error: %v", gameID, werr)
	}
}
