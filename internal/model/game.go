package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidSquare = errors.New("square off board")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameOver      = errors.New("game is over")
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCheck      Status = "check"
	StatusCheckmate  Status = "checkmate"
)

type GameState struct {
	Board          *Board         `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	Status         Status         `json:"status"`
	Winner         Color          `json:"winner,omitempty"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	SelectedSquare *Square        `json:"selectedSquare"`
	LegalMoves     []Square       `json:"legalMoves"`
	LastMove       *Move          `json:"lastMove"`
}

// Game owns one board and mutates it only through selection, move
// execution and reset. It is not safe for concurrent use.
type Game struct {
	state GameState
}

func NewGame() *Game {
	return &Game{state: newGameState(NewBoard(), White)}
}

// NewGameFromPosition starts a game on an arbitrary board. Status is
// computed for toMove immediately.
func NewGameFromPosition(board *Board, toMove Color) *Game {
	g := &Game{state: newGameState(board.Clone(), toMove)}
	g.updateStatus()
	return g
}

func newGameState(board *Board, toMove Color) GameState {
	return GameState{
		Board:          board,
		ToMove:         toMove,
		Status:         StatusInProgress,
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
		SelectedSquare: nil,
		LegalMoves:     make([]Square, 0),
		LastMove:       nil,
	}
}

// State returns a deep copy of the current state.
func (g *Game) State() GameState {
	s := g.state
	s.Board = g.state.Board.Clone()
	s.MoveHistory = slices.Clone(g.state.MoveHistory)
	s.CapturedPieces = g.state.CapturedPieces.clone()
	s.LegalMoves = slices.Clone(g.state.LegalMoves)
	if g.state.SelectedSquare != nil {
		sel := *g.state.SelectedSquare
		s.SelectedSquare = &sel
	}
	if g.state.LastMove != nil {
		last := *g.state.LastMove
		s.LastMove = &last
	}
	return s
}

func (g *Game) Status() Status { return g.state.Status }

func (g *Game) Turn() Color { return g.state.ToMove }

func (g *Game) History() []Move { return slices.Clone(g.state.MoveHistory) }

func (g *Game) Captured(color Color) []Piece {
	return slices.Clone(g.state.CapturedPieces.By(color))
}

// SelectSquare makes sq the current selection and returns its legal
// destinations. The result is empty when sq is empty, holds a piece of the
// side not to move, or has no legal moves.
func (g *Game) SelectSquare(sq Square) ([]Square, error) {
	if !sq.OnBoard() {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidSquare, sq.Row, sq.Col)
	}
	g.clearSelection()
	piece := g.state.Board.Get(sq)
	if piece == nil || piece.Color != g.state.ToMove || g.state.Status == StatusCheckmate {
		return []Square{}, nil
	}
	sel := sq
	g.state.SelectedSquare = &sel
	g.state.LegalMoves = LegalMoves(g.state.Board, sq)
	return slices.Clone(g.state.LegalMoves), nil
}

func (g *Game) clearSelection() {
	g.state.SelectedSquare = nil
	g.state.LegalMoves = make([]Square, 0)
}

// legalTargets returns the cached targets when from is the current
// selection, otherwise computes them on the unchanged board.
func (g *Game) legalTargets(from Square) []Square {
	if g.state.SelectedSquare != nil && *g.state.SelectedSquare == from {
		return g.state.LegalMoves
	}
	return LegalMoves(g.state.Board, from)
}

func (g *Game) validateMove(from, to Square) error {
	if !from.OnBoard() || !to.OnBoard() {
		return fmt.Errorf("%w: (%d,%d)->(%d,%d)", ErrInvalidSquare, from.Row, from.Col, to.Row, to.Col)
	}
	if g.state.Status == StatusCheckmate {
		return ErrGameOver
	}
	piece := g.state.Board.Get(from)
	if piece == nil {
		return fmt.Errorf("%w: no piece on %s", ErrIllegalMove, from.Notation())
	}
	if piece.Color != g.state.ToMove {
		return fmt.Errorf("%w: %s", ErrNotYourTurn, from.Notation())
	}
	if !slices.Contains(g.legalTargets(from), to) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, moveNotation(from, to))
	}
	return nil
}

// ExecuteMove plays from->to for the side to move. A rejected move leaves
// the state untouched.
func (g *Game) ExecuteMove(from, to Square) (GameState, error) {
	if err := g.validateMove(from, to); err != nil {
		return GameState{}, err
	}
	g.executeMove(from, to)
	return g.State(), nil
}

func (g *Game) executeMove(from, to Square) {
	board := g.state.Board
	piece := board.Get(from)
	captured := board.Get(to)
	mover := g.state.ToMove

	move := Move{
		From:     from,
		To:       to,
		Piece:    piece.Type,
		Mover:    mover,
		Notation: moveNotation(from, to),
	}

	board.Set(to, piece)
	board.Set(from, nil)
	piece.HasMoved = true
	if piece.Type == Pawn && to.Row == pawnRules[piece.Color].lastRow {
		board.Set(to, &Piece{Type: Queen, Color: piece.Color, HasMoved: true})
		move.Promoted = true
	}

	if captured != nil {
		move.Captured = captured.Type
		switch mover {
		case White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *captured)
		case Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *captured)
		}
	}
	g.state.MoveHistory = append(g.state.MoveHistory, move)
	g.state.LastMove = &move

	g.switchTurn()
	g.updateStatus()
	g.clearSelection()
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
}

func (g *Game) updateStatus() {
	g.state.Winner = ""
	if !IsKingInCheck(g.state.Board, g.state.ToMove) {
		g.state.Status = StatusInProgress
		return
	}
	if HasLegalMove(g.state.Board, g.state.ToMove) {
		g.state.Status = StatusCheck
		return
	}
	g.state.Status = StatusCheckmate
	g.state.Winner = g.state.ToMove.Opponent()
}

// Click applies one board click: select an own piece, play a highlighted
// target, switch to another own piece, or clear the selection.
func (g *Game) Click(sq Square) (GameState, error) {
	if !sq.OnBoard() {
		return GameState{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidSquare, sq.Row, sq.Col)
	}
	sel := g.state.SelectedSquare
	if sel != nil && slices.Contains(g.state.LegalMoves, sq) {
		return g.ExecuteMove(*sel, sq)
	}
	if piece := g.state.Board.Get(sq); piece != nil && piece.Color == g.state.ToMove {
		if _, err := g.SelectSquare(sq); err != nil {
			return GameState{}, err
		}
		return g.State(), nil
	}
	g.clearSelection()
	return g.State(), nil
}

// NewGame discards the current game and restores the initial position.
func (g *Game) NewGame() GameState {
	g.state = newGameState(NewBoard(), White)
	return g.State()
}

func (g *Game) Reset() GameState {
	return g.NewGame()
}

// Undo has no move stack: it restarts the game once any move was played.
func (g *Game) Undo() GameState {
	if len(g.state.MoveHistory) == 0 {
		return g.State()
	}
	return g.NewGame()
}
