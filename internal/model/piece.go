package model

import "fmt"

// PieceKind is the closed set of piece variants. A piece's kind is fixed at
// construction; there is no promotion.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return fmt.Sprintf("piece(%d)", uint8(k))
}

func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	for kind := Pawn; kind <= King; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

// Piece is a single chess piece. It does not know its own square; position is
// always derived by asking the board. HasMoved flips to true the first time
// the piece is moved through MoveTo and never reverts.
type Piece struct {
	Kind     PieceKind `json:"type"`
	Player   Player    `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

func NewPiece(kind PieceKind, player Player) *Piece {
	return &Piece{Kind: kind, Player: player}
}

var (
	knightOffsets = []Square{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
	kingOffsets = []Square{
		{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1},
		{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1},
	}
	orthogonalDirs = []Square{
		{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1},
	}
	diagonalDirs = []Square{
		{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1},
	}
	queenDirs = append(append([]Square{}, orthogonalDirs...), diagonalDirs...)
)

// AvailableMoves returns every square this piece may move to under basic
// movement rules: no check detection, castling, en passant or promotion.
// The result is a set; enumeration order is unspecified. A piece that is not
// on the board has no moves.
func (p *Piece) AvailableMoves(b *Board) []Square {
	from, ok := b.FindPiece(p)
	if !ok {
		return nil
	}
	switch p.Kind {
	case Pawn:
		return p.pawnMoves(b, from)
	case Knight:
		return p.offsetMoves(b, from, knightOffsets)
	case Bishop:
		return p.slidingMoves(b, from, diagonalDirs)
	case Rook:
		return p.slidingMoves(b, from, orthogonalDirs)
	case Queen:
		return p.slidingMoves(b, from, queenDirs)
	case King:
		return p.offsetMoves(b, from, kingOffsets)
	}
	return nil
}

// MoveTo relocates the piece to dest and marks it as moved, returning the
// captured occupant of dest, if any. It performs no legality check: callers
// wanting enforcement must confirm dest against AvailableMoves first. The
// HasMoved flip is unconditional and permanent.
func (p *Piece) MoveTo(b *Board, dest Square) *Piece {
	from, ok := b.FindPiece(p)
	if !ok {
		return nil
	}
	captured := b.MovePiece(from, dest)
	p.HasMoved = true
	return captured
}

// isEnemy reports whether sq holds an opposing piece. Callers bounds-check
// first; an off-board sq is never passed in.
func (p *Piece) isEnemy(sq Square, b *Board) bool {
	occupant := b.GetPiece(sq)
	return occupant != nil && occupant.Player != p.Player
}

// canMove is the generic destination test for non-pawn, non-sliding moves:
// on the board, and either empty or capturable.
func (p *Piece) canMove(sq Square, b *Board) bool {
	return b.Contains(sq) && (b.GetPiece(sq) == nil || p.isEnemy(sq, b))
}

func (p *Piece) pawnMoves(b *Board, from Square) []Square {
	direction := 1
	if p.Player == Black {
		direction = -1
	}
	var moves []Square
	forward := SquareAt(from.Row+direction, from.Col)
	if !b.Contains(forward) || b.GetPiece(forward) != nil {
		return moves
	}
	moves = append(moves, forward)
	// Diagonals are capture-only: never into empty squares.
	for _, dc := range [2]int{-1, 1} {
		capture := SquareAt(from.Row+direction, from.Col+dc)
		if b.Contains(capture) && p.isEnemy(capture, b) {
			moves = append(moves, capture)
		}
	}
	if !p.HasMoved {
		double := SquareAt(from.Row+2*direction, from.Col)
		if b.Contains(double) && b.GetPiece(double) == nil {
			moves = append(moves, double)
		}
	}
	return moves
}

func (p *Piece) offsetMoves(b *Board, from Square, offsets []Square) []Square {
	var moves []Square
	for _, off := range offsets {
		to := SquareAt(from.Row+off.Row, from.Col+off.Col)
		if p.canMove(to, b) {
			moves = append(moves, to)
		}
	}
	return moves
}

// slidingMoves scans each direction independently, collecting empty squares
// until the first occupied one, which is included only when it holds an enemy.
// Nothing beyond the first occupied square is ever reachable.
func (p *Piece) slidingMoves(b *Board, from Square, dirs []Square) []Square {
	var moves []Square
	for _, dir := range dirs {
		to := SquareAt(from.Row+dir.Row, from.Col+dir.Col)
		for b.Contains(to) {
			if b.GetPiece(to) == nil {
				moves = append(moves, to)
			} else {
				if p.isEnemy(to, b) {
					moves = append(moves, to)
				}
				break
			}
			to = SquareAt(to.Row+dir.Row, to.Col+dir.Col)
		}
	}
	return moves
}
