package model

// findKing scans rows 0..7 then columns 0..7 and returns the first king of
// color.
func findKing(b *Board, color Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Cells[row][col]; p != nil && p.Type == King && p.Color == color {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// IsKingInCheck reports whether any opposing piece has a pseudo-legal move
// onto the king of color. A color with no king on the board is never in
// check.
func IsKingInCheck(b *Board, color Color) bool {
	king, ok := findKing(b, color)
	if !ok {
		return false
	}
	opponent := color.Opponent()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Cells[row][col]
			if p == nil || p.Color != opponent {
				continue
			}
			for _, target := range PseudoLegalMoves(b, Square{Row: row, Col: col}) {
				if target == king {
					return true
				}
			}
		}
	}
	return false
}

// LegalMoves filters the pseudo-legal moves of the piece on from, keeping
// those that do not leave its own king in check. The board is restored
// exactly after every trial move.
func LegalMoves(b *Board, from Square) []Square {
	piece := b.Get(from)
	if piece == nil {
		return []Square{}
	}
	legal := []Square{}
	for _, to := range PseudoLegalMoves(b, from) {
		captured := b.Get(to)
		b.Set(to, piece)
		b.Set(from, nil)
		inCheck := IsKingInCheck(b, piece.Color)
		b.Set(from, piece)
		b.Set(to, captured)
		if !inCheck {
			legal = append(legal, to)
		}
	}
	return legal
}

// HasLegalMove reports whether any piece of color has at least one legal move.
func HasLegalMove(b *Board, color Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Cells[row][col]
			if p == nil || p.Color != color {
				continue
			}
			if len(LegalMoves(b, Square{Row: row, Col: col})) > 0 {
				return true
			}
		}
	}
	return false
}
