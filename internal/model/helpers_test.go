package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var pieceLetters = map[rune]PieceType{
	'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn,
}

// boardFrom builds a board from eight rank strings, row 0 first. Upper case
// letters are white, lower case black, '.' is empty.
func boardFrom(t *testing.T, rows ...string) *Board {
	t.Helper()
	require.Len(t, rows, 8)
	b := EmptyBoard()
	for row, line := range rows {
		require.Len(t, line, 8, "row %d", row)
		for col, r := range line {
			if r == '.' {
				continue
			}
			color := Black
			if r >= 'A' && r <= 'Z' {
				color = White
				r += 'a' - 'A'
			}
			kind, ok := pieceLetters[r]
			require.True(t, ok, "unknown piece %q", r)
			b.Cells[row][col] = &Piece{Type: kind, Color: color}
		}
	}
	return b
}

func sq(t *testing.T, name string) Square {
	t.Helper()
	s, err := ParseSquare(name)
	require.NoError(t, err)
	return s
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		_, err := g.ExecuteMove(sq(t, m[:2]), sq(t, m[3:]))
		require.NoError(t, err, m)
	}
}

func names(squares []Square) []string {
	out := make([]string, 0, len(squares))
	for _, s := range squares {
		out = append(out, s.Notation())
	}
	return out
}
