package model

import "encoding/json"

// Board is a square-indexed store of pieces: a size×size grid holding at most
// one piece per square, plus a reverse index so a piece can be located by
// identity without scanning. The side length is configuration, not a constant;
// every movement algorithm reads it through Size.
type Board struct {
	size  int
	grid  [][]*Piece
	index map[*Piece]Square
}

const StandardBoardSize = 8

func NewBoard(size int) *Board {
	b := &Board{
		size:  size,
		grid:  make([][]*Piece, size),
		index: make(map[*Piece]Square),
	}
	for i := range b.grid {
		b.grid[i] = make([]*Piece, size)
	}
	return b
}

// NewEmptyBoard returns a standard-size board with no pieces on it.
func NewEmptyBoard() *Board {
	return NewBoard(StandardBoardSize)
}

// NewStandardBoard returns a board set up with the regular starting position.
func NewStandardBoard() *Board {
	b := NewEmptyBoard()
	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range backRank {
		b.SetPiece(SquareAt(0, col), NewPiece(kind, White))
		b.SetPiece(SquareAt(b.size-1, col), NewPiece(kind, Black))
	}
	for col := 0; col < b.size; col++ {
		b.SetPiece(SquareAt(1, col), NewPiece(Pawn, White))
		b.SetPiece(SquareAt(b.size-2, col), NewPiece(Pawn, Black))
	}
	return b
}

func (b *Board) Size() int {
	return b.size
}

// Contains reports whether sq lies on the board.
func (b *Board) Contains(sq Square) bool {
	return sq.Row >= 0 && sq.Row < b.size && sq.Col >= 0 && sq.Col < b.size
}

// GetPiece returns the occupant of sq, or nil for an empty square. The square
// must be on the board; callers bounds-check with Contains first.
func (b *Board) GetPiece(sq Square) *Piece {
	return b.grid[sq.Row][sq.Col]
}

// FindPiece locates a piece by identity. The second return is false when the
// piece is not currently placed on this board.
func (b *Board) FindPiece(p *Piece) (Square, bool) {
	sq, ok := b.index[p]
	return sq, ok
}

// SetPiece places p on sq, displacing any prior occupant. A piece already on
// the board is moved rather than duplicated.
func (b *Board) SetPiece(sq Square, p *Piece) {
	if prev := b.grid[sq.Row][sq.Col]; prev != nil {
		delete(b.index, prev)
	}
	if old, ok := b.index[p]; ok {
		b.grid[old.Row][old.Col] = nil
	}
	b.grid[sq.Row][sq.Col] = p
	b.index[p] = sq
}

// RemovePiece clears sq, returning whatever occupied it.
func (b *Board) RemovePiece(sq Square) *Piece {
	p := b.grid[sq.Row][sq.Col]
	if p != nil {
		delete(b.index, p)
		b.grid[sq.Row][sq.Col] = nil
	}
	return p
}

// MovePiece relocates the occupant of from to to, overwriting any occupant of
// to. The evicted piece is returned so the game layer can record the capture.
// Legality is the caller's concern.
func (b *Board) MovePiece(from, to Square) *Piece {
	p := b.grid[from.Row][from.Col]
	if p == nil {
		return nil
	}
	captured := b.grid[to.Row][to.Col]
	if captured != nil {
		delete(b.index, captured)
	}
	b.grid[from.Row][from.Col] = nil
	b.grid[to.Row][to.Col] = p
	b.index[p] = to
	return captured
}

func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.grid)
}
