package model

import (
	"encoding/json"
	"fmt"
)

// Notation returns the algebraic name of the square, e.g. "e2".
func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// ParseSquare is the inverse of Square.Notation.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	sq := Square{Row: 8 - int(name[1]-'0'), Col: int(name[0] - 'a')}
	if !sq.OnBoard() {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return sq, nil
}

// UnmarshalJSON requires both coordinates, so a missing row or col is
// rejected instead of read as 0.
func (s *Square) UnmarshalJSON(data []byte) error {
	var raw struct {
		Row *int `json:"row"`
		Col *int `json:"col"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Row == nil || raw.Col == nil {
		return fmt.Errorf("%w: row and col are required", ErrInvalidSquare)
	}
	*s = Square{Row: *raw.Row, Col: *raw.Col}
	return nil
}

func moveNotation(from, to Square) string {
	return from.Notation() + "-" + to.Notation()
}

// MoveList renders the history one line per ply, numbered by full move.
func (g *Game) MoveList() []string {
	lines := make([]string, 0, len(g.state.MoveHistory))
	for i, m := range g.state.MoveHistory {
		line := fmt.Sprintf("%d. %s", i/2+1, m.Notation)
		if m.Captured != "" {
			line += fmt.Sprintf(" (%s)", m.Captured)
		}
		lines = append(lines, line)
	}
	return lines
}

// PossibleMoves describes the legal targets of the current selection.
func (g *Game) PossibleMoves() []string {
	sel := g.state.SelectedSquare
	if sel == nil {
		return []string{}
	}
	out := make([]string, 0, len(g.state.LegalMoves))
	for _, to := range g.state.LegalMoves {
		line := fmt.Sprintf("%s → %s", sel.Notation(), to.Notation())
		if captured := g.state.Board.Get(to); captured != nil {
			line += fmt.Sprintf(" (captures %s)", captured.Type)
		}
		out = append(out, line)
	}
	return out
}
