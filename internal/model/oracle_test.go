package model

import (
	"sort"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromOracle(s chess.Square) Square {
	return Square{Row: 7 - int(s.Rank()), Col: int(s.File())}
}

// oracleTargets groups the oracle's legal moves by origin, leaving out the
// special king and pawn moves this engine does not play.
func oracleTargets(g *chess.Game) map[Square][]string {
	out := map[Square][]string{}
	for _, m := range g.ValidMoves() {
		if m.HasTag(chess.KingSideCastle) || m.HasTag(chess.QueenSideCastle) || m.HasTag(chess.EnPassant) {
			continue
		}
		if m.Promo() != chess.NoPieceType && m.Promo() != chess.Queen {
			continue
		}
		from := fromOracle(m.S1())
		out[from] = append(out[from], fromOracle(m.S2()).Notation())
	}
	for _, targets := range out {
		sort.Strings(targets)
	}
	return out
}

func engineTargets(t *testing.T, g *Game) map[Square][]string {
	t.Helper()
	out := map[Square][]string{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Square{Row: row, Col: col}
			moves, err := g.SelectSquare(from)
			require.NoError(t, err)
			if len(moves) == 0 {
				continue
			}
			targets := names(moves)
			sort.Strings(targets)
			out[from] = targets
		}
	}
	return out
}

func oracleMove(t *testing.T, g *chess.Game, from, to Square) *chess.Move {
	t.Helper()
	for _, m := range g.ValidMoves() {
		if fromOracle(m.S1()) == from && fromOracle(m.S2()) == to &&
			(m.Promo() == chess.NoPieceType || m.Promo() == chess.Queen) {
			return m
		}
	}
	t.Fatalf("oracle has no move %s", moveNotation(from, to))
	return nil
}

func TestLegalMovesAgreeWithOracle(t *testing.T) {
	games := map[string][]string{
		"fried liver": {
			"e2-e4", "e7-e5", "g1-f3", "b8-c6", "f1-c4", "g8-f6", "f3-g5", "d7-d5",
			"e4-d5", "f6-d5", "g5-f7", "e8-f7", "d1-f3", "f7-e6", "b1-c3", "c6-b4",
		},
		"fools mate": {"f2-f3", "e7-e5", "g2-g4", "d8-h4"},
		"scholars mate": {"e2-e4", "e7-e5", "d1-h5", "b8-c6", "f1-c4", "g8-f6", "h5-f7"},
		"queen trade": {
			"d2-d4", "d7-d5", "c2-c4", "d5-c4", "d1-a4", "c7-c6", "a4-c4", "d8-d4",
			"c4-d4", "b8-d7", "d4-d7", "c8-d7",
		},
	}
	for name, moves := range games {
		t.Run(name, func(t *testing.T) {
			g := NewGame()
			oracle := chess.NewGame()
			assert.Equal(t, oracleTargets(oracle), engineTargets(t, g))

			for _, m := range moves {
				from, to := sq(t, m[:2]), sq(t, m[3:])
				require.NoError(t, oracle.Move(oracleMove(t, oracle, from, to)), m)
				_, err := g.ExecuteMove(from, to)
				require.NoError(t, err, m)

				assert.Equal(t, oracleTargets(oracle), engineTargets(t, g), "after %s", m)
				mated := oracle.Method() == chess.Checkmate
				assert.Equal(t, mated, g.Status() == StatusCheckmate, "after %s", m)
			}
		})
	}
}
