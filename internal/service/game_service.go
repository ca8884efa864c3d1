package service

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessgame-backend/internal/model"
	"github.com/benbeisheim/chessgame-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame opens a new session and seats the creator as white.
func (gs *GameService) CreateGame(playerID string) (string, model.Color, error) {
	session := gs.gameManager.CreateGame()
	color, err := session.AddPlayer(playerID)
	if err != nil {
		_ = gs.gameManager.RemoveGame(session.ID)
		return "", "", fmt.Errorf("failed to create game: %w", err)
	}
	return session.ID, color, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gs *GameService) GetGameState(gameID string) (Snapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Snapshot(), nil
}

func (gs *GameService) SelectSquare(gameID, playerID string, sq model.Square) ([]model.Square, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.Select(playerID, sq)
}

func (gs *GameService) HandleMove(gameID, playerID string, from, to model.Square) (Snapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Move(playerID, from, to)
}

func (gs *GameService) HandleClick(gameID, playerID string, sq model.Square) (Snapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Click(playerID, sq)
}

func (gs *GameService) NewGame(gameID, playerID string) (Snapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.NewGame(playerID)
}

func (gs *GameService) Undo(gameID, playerID string) (Snapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Undo(playerID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn Conn) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn Conn) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, conn)
}

// SendError reports err to a single connection of the game.
func (gs *GameService) SendError(gameID string, conn Conn, cause error) error {
	payload, err := json.Marshal(ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		return err
	}
	msg := ws.Message{Type: ws.MessageTypeError, Payload: json.RawMessage(payload)}
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return conn.WriteJSON(msg)
	}
	return session.Write(conn, msg)
}
