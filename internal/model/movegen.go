package model

var (
	orthogonalDirs = []Square{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}
	diagonalDirs   = []Square{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	allDirs        = append(append([]Square{}, orthogonalDirs...), diagonalDirs...)
	knightJumps    = []Square{
		{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2},
		{Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
	}
)

// slider describes a piece that walks rays up to a maximum distance.
type slider struct {
	dirs  []Square
	reach int
}

var sliders = map[PieceType]slider{
	Rook:   {dirs: orthogonalDirs, reach: 7},
	Bishop: {dirs: diagonalDirs, reach: 7},
	Queen:  {dirs: allDirs, reach: 7},
	King:   {dirs: allDirs, reach: 1},
}

type pawnRule struct {
	dir      int
	startRow int
	lastRow  int
}

var pawnRules = map[Color]pawnRule{
	White: {dir: -1, startRow: 6, lastRow: 0},
	Black: {dir: 1, startRow: 1, lastRow: 7},
}

// PseudoLegalMoves returns the destinations the piece on from can reach by
// its movement pattern alone, ignoring whether its own king is left in check.
// An empty square yields no moves.
func PseudoLegalMoves(b *Board, from Square) []Square {
	piece := b.Get(from)
	if piece == nil {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, from, piece)
	case Knight:
		return knightMoves(b, from, piece)
	default:
		s, ok := sliders[piece.Type]
		if !ok {
			return nil
		}
		return slidingMoves(b, from, piece, s)
	}
}

func pawnMoves(b *Board, from Square, piece *Piece) []Square {
	rule := pawnRules[piece.Color]
	moves := []Square{}

	one := Square{Row: from.Row + rule.dir, Col: from.Col}
	if one.OnBoard() && b.Get(one) == nil {
		moves = append(moves, one)
		two := Square{Row: from.Row + 2*rule.dir, Col: from.Col}
		if from.Row == rule.startRow && b.Get(two) == nil {
			moves = append(moves, two)
		}
	}

	for _, dc := range []int{-1, 1} {
		target := Square{Row: from.Row + rule.dir, Col: from.Col + dc}
		if !target.OnBoard() {
			continue
		}
		if occupant := b.Get(target); occupant != nil && occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func knightMoves(b *Board, from Square, piece *Piece) []Square {
	moves := []Square{}
	for _, jump := range knightJumps {
		target := from.add(jump)
		if !target.OnBoard() {
			continue
		}
		if occupant := b.Get(target); occupant == nil || occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func slidingMoves(b *Board, from Square, piece *Piece, s slider) []Square {
	moves := []Square{}
	for _, dir := range s.dirs {
		target := from
		for step := 0; step < s.reach; step++ {
			target = target.add(dir)
			if !target.OnBoard() {
				break
			}
			occupant := b.Get(target)
			if occupant == nil {
				moves = append(moves, target)
				continue
			}
			if occupant.Color != piece.Color {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}
