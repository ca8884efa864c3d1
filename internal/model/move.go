package model

// Move is one recorded ply. Captured is empty when nothing was taken.
type Move struct {
	From     Square    `json:"from"`
	To       Square    `json:"to"`
	Piece    PieceType `json:"piece"`
	Captured PieceType `json:"captured,omitempty"`
	Mover    Color     `json:"mover"`
	Promoted bool      `json:"promoted"`
	Notation string    `json:"notation"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// By returns the pieces captured by color.
func (c CapturedPieces) By(color Color) []Piece {
	if color == White {
		return c.White
	}
	return c.Black
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]Piece, 0, len(c.White)), c.White...),
		Black: append(make([]Piece, 0, len(c.Black)), c.Black...),
	}
}
