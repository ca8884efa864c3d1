package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessgame-backend/internal/model"
	"github.com/benbeisheim/chessgame-backend/internal/ws"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameFull     = errors.New("game is full")
	ErrNotAPlayer   = errors.New("player not in game")

	ErrDuplicateConnection = errors.New("player already connected")
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Players struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// Session is one chess game shared by up to two seated players and any
// number of connected observers. All core calls run under mu.
type Session struct {
	ID      string
	mu      sync.Mutex
	game    *model.Game
	players Players
	conns   map[string]Conn // playerID -> connection
	connsMu sync.RWMutex
	// writeMu serializes websocket writes. It is taken before mu is
	// released so frames leave in the order their snapshots were taken.
	writeMu sync.Mutex
}

// Snapshot is what clients receive for every state change.
type Snapshot struct {
	GameID        string          `json:"gameId"`
	Players       Players         `json:"players"`
	State         model.GameState `json:"state"`
	MoveList      []string        `json:"moveList"`
	PossibleMoves []string        `json:"possibleMoves"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		game:  model.NewGame(),
		conns: make(map[string]Conn),
	}
}

// AddPlayer seats the player on the first free color. Re-joining returns the
// seat already held.
func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	if playerID == "" {
		return "", ErrNotAPlayer
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch playerID {
	case s.players.White:
		return model.White, nil
	case s.players.Black:
		return model.Black, nil
	}
	if s.players.White == "" {
		s.players.White = playerID
		log.Printf("game %s: player %s seated as white", s.ID, playerID)
		return model.White, nil
	}
	if s.players.Black == "" {
		s.players.Black = playerID
		log.Printf("game %s: player %s seated as black", s.ID, playerID)
		return model.Black, nil
	}
	return "", ErrGameFull
}

func (s *Session) isPlayer(playerID string) bool {
	return playerID != "" && (s.players.White == playerID || s.players.Black == playerID)
}

// canAct reports whether playerID may play for color. A player holding one
// seat also plays the other while it is empty.
func (s *Session) canAct(playerID string, color model.Color) error {
	if !s.isPlayer(playerID) {
		return ErrNotAPlayer
	}
	seat := s.players.White
	if color == model.Black {
		seat = s.players.Black
	}
	if seat == playerID || seat == "" {
		return nil
	}
	return fmt.Errorf("%w: %s to move", model.ErrNotYourTurn, color)
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		GameID:        s.ID,
		Players:       s.players,
		State:         s.game.State(),
		MoveList:      s.game.MoveList(),
		PossibleMoves: s.game.PossibleMoves(),
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Select returns the legal destinations of sq for the side to move.
func (s *Session) Select(playerID string, sq model.Square) ([]model.Square, error) {
	s.mu.Lock()
	if err := s.canAct(playerID, s.game.Turn()); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	moves, err := s.game.SelectSquare(sq)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.publish()
	return moves, nil
}

func (s *Session) Move(playerID string, from, to model.Square) (Snapshot, error) {
	s.mu.Lock()
	if err := s.canAct(playerID, s.game.Turn()); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	if _, err := s.game.ExecuteMove(from, to); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	return s.publish(), nil
}

func (s *Session) Click(playerID string, sq model.Square) (Snapshot, error) {
	s.mu.Lock()
	if err := s.canAct(playerID, s.game.Turn()); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	if _, err := s.game.Click(sq); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	return s.publish(), nil
}

func (s *Session) NewGame(playerID string) (Snapshot, error) {
	return s.restart(playerID, (*model.Game).NewGame)
}

func (s *Session) Undo(playerID string) (Snapshot, error) {
	return s.restart(playerID, (*model.Game).Undo)
}

func (s *Session) restart(playerID string, op func(*model.Game) model.GameState) (Snapshot, error) {
	s.mu.Lock()
	if !s.isPlayer(playerID) {
		s.mu.Unlock()
		return Snapshot{}, ErrNotAPlayer
	}
	op(s.game)
	return s.publish(), nil
}

// RegisterConnection subscribes conn to state broadcasts and sends it the
// current state. A player may hold only one connection per game.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	if !s.isPlayer(playerID) && s.players.White != "" && s.players.Black != "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: not authorized to watch %s", ErrNotAPlayer, s.ID)
	}

	s.connsMu.Lock()
	if _, exists := s.conns[playerID]; exists {
		s.connsMu.Unlock()
		s.mu.Unlock()
		return fmt.Errorf("%w: %s in game %s", ErrDuplicateConnection, playerID, s.ID)
	}
	s.conns[playerID] = conn
	s.connsMu.Unlock()
	log.Printf("game %s: registered connection for player %s", s.ID, playerID)

	snap := s.snapshot()
	s.writeMu.Lock()
	s.mu.Unlock()
	defer s.writeMu.Unlock()
	return s.send(playerID, conn, snap)
}

// UnregisterConnection removes the player's connection only if it is conn.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	if current, ok := s.conns[playerID]; ok && current == conn {
		delete(s.conns, playerID)
		log.Printf("game %s: unregistered connection for player %s", s.ID, playerID)
	}
}

func (s *Session) ConnectionCount() int {
	s.connsMu.RLock()
	defer s.connsMu.RUnlock()
	return len(s.conns)
}

// publish takes a snapshot and broadcasts it. It must be called with mu
// held and releases it.
func (s *Session) publish() Snapshot {
	snap := s.snapshot()
	s.writeMu.Lock()
	s.mu.Unlock()
	defer s.writeMu.Unlock()
	s.broadcast(snap)
	return snap
}

// broadcast must be called with writeMu held.
func (s *Session) broadcast(snap Snapshot) {
	s.connsMu.RLock()
	active := make(map[string]Conn, len(s.conns))
	for playerID, conn := range s.conns {
		active[playerID] = conn
	}
	s.connsMu.RUnlock()

	for playerID, conn := range active {
		if err := s.send(playerID, conn, snap); err != nil {
			log.Printf("game %s: dropping connection for player %s: %v", s.ID, playerID, err)
			s.UnregisterConnection(playerID, conn)
		}
	}
}

func (s *Session) send(playerID string, conn Conn, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal state for %s: %w", playerID, err)
	}
	return conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	})
}

// Write sends msg on conn, serialized with the session's broadcasts.
func (s *Session) Write(conn Conn, msg ws.Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
