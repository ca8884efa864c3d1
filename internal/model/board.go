package model

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// backRank is the piece order of both back ranks from column 0 to 7.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

// Square addresses a board cell. Row 0 is black's back rank, row 7 is white's.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) add(d Square) Square {
	return Square{Row: s.Row + d.Row, Col: s.Col + d.Col}
}

func (s Square) OnBoard() bool {
	return IsOnBoard(s.Row, s.Col)
}

func IsOnBoard(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

// Board is an 8x8 mailbox. Callers validate squares with IsOnBoard before
// calling Get or Set.
type Board struct {
	Cells [8][8]*Piece `json:"board"`
}

func (b *Board) Get(sq Square) *Piece {
	return b.Cells[sq.Row][sq.Col]
}

func (b *Board) Set(sq Square, p *Piece) {
	b.Cells[sq.Row][sq.Col] = p
}

// Clone returns a deep copy so snapshots never alias live pieces.
func (b *Board) Clone() *Board {
	c := &Board{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Cells[row][col]; p != nil {
				cp := *p
				c.Cells[row][col] = &cp
			}
		}
	}
	return c
}

// Equal compares kind, color and hasMoved of every cell.
func (b *Board) Equal(o *Board) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p, q := b.Cells[row][col], o.Cells[row][col]
			if (p == nil) != (q == nil) {
				return false
			}
			if p != nil && *p != *q {
				return false
			}
		}
	}
	return true
}

func EmptyBoard() *Board {
	return &Board{}
}

func NewBoard() *Board {
	board := EmptyBoard()
	for col := 0; col < 8; col++ {
		board.Cells[0][col] = &Piece{Type: backRank[col], Color: Black}
		board.Cells[1][col] = &Piece{Type: Pawn, Color: Black}
		board.Cells[6][col] = &Piece{Type: Pawn, Color: White}
		board.Cells[7][col] = &Piece{Type: backRank[col], Color: White}
	}
	return board
}
