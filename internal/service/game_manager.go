// service/game_manager.go
package service

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type GameManager struct {
	games map[string]*Session
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*Session),
	}
}

func (gm *GameManager) CreateGame() *Session {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gameID := uuid.New().String()
	session := NewSession(gameID)
	gm.games[gameID] = session
	log.Printf("game %s: created", gameID)
	return session
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	log.Printf("game %s: removed", gameID)
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
