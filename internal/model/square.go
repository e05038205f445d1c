package model

import "fmt"

// Square identifies a board position by zero-indexed row and column. Row 0 is
// white's back rank; white pawns advance toward increasing rows. Squares are
// plain values: they compare with == and work as map keys, and they carry no
// validity range of their own (bounds are checked against a Board).
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func SquareAt(row, col int) Square {
	return Square{Row: row, Col: col}
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}
