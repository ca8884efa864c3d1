package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessgame-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeSelect    MessageType = "select"
	MessageTypeMove      MessageType = "move"
	MessageTypeClick     MessageType = "click"
	MessageTypeNewGame   MessageType = "newGame"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type SquarePayload struct {
	Square model.Square `json:"square"`
}

type MovePayload struct {
	From model.Square `json:"from"`
	To   model.Square `json:"to"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
