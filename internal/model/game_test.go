package model

import "testing"

func TestAddPlayerAssignsColors(t *testing.T) {
	game := NewGame("test-game")

	color, err := game.AddPlayer("alice")
	if err != nil {
		t.Fatalf("add first player: %v", err)
	}
	if color != White {
		t.Fatalf("expected first player to be white, got %v", color)
	}

	color, err = game.AddPlayer("bob")
	if err != nil {
		t.Fatalf("add second player: %v", err)
	}
	if color != Black {
		t.Fatalf("expected second player to be black, got %v", color)
	}

	if _, err := game.AddPlayer("carol"); err == nil {
		t.Fatal("expected error joining a full game")
	}
}

func TestMakeMoveRejections(t *testing.T) {
	tests := []struct {
		name string
		move WSMove
	}{
		{
			name: "out of bounds",
			move: WSMove{From: SquareAt(0, 8), To: SquareAt(0, 0)},
		},
		{
			name: "empty from square",
			move: WSMove{From: SquareAt(3, 3), To: SquareAt(4, 3)},
		},
		{
			name: "not the mover's turn",
			move: WSMove{From: SquareAt(6, 4), To: SquareAt(5, 4)},
		},
		{
			name: "destination not in available moves",
			move: WSMove{From: SquareAt(1, 4), To: SquareAt(4, 4)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := NewGame("test-game")
			if err := game.MakeMove(tt.move); err == nil {
				t.Fatal("expected move to be rejected")
			}
			if got := game.GetState().ToMove; got != White {
				t.Fatalf("rejected move must not switch turn, to move is %v", got)
			}
		})
	}
}

func TestMakeMoveExecutesAndSwitchesTurn(t *testing.T) {
	game := NewGame("test-game")

	if err := game.MakeMove(WSMove{From: SquareAt(1, 4), To: SquareAt(3, 4)}); err != nil {
		t.Fatalf("make move: %v", err)
	}

	state := game.GetState()
	if state.ToMove != Black {
		t.Fatalf("expected black to move, got %v", state.ToMove)
	}
	if p := state.Board.GetPiece(SquareAt(3, 4)); p == nil || p.Kind != Pawn || !p.HasMoved {
		t.Fatalf("expected a moved white pawn at (3,4), got %v", p)
	}
	if state.Board.GetPiece(SquareAt(1, 4)) != nil {
		t.Fatal("origin square should be empty")
	}
	if len(state.MoveHistory) != 1 {
		t.Fatalf("expected one history entry, got %d", len(state.MoveHistory))
	}
	record := state.MoveHistory[0]
	if record.Kind != Pawn || record.Player != White || record.Captured != nil {
		t.Fatalf("unexpected history record %+v", record)
	}
	if state.LastMove == nil || state.LastMove.To != SquareAt(3, 4) {
		t.Fatalf("unexpected last move %+v", state.LastMove)
	}
}

func TestMakeMoveRecordsCapture(t *testing.T) {
	game := NewGame("test-game")

	moves := []WSMove{
		{From: SquareAt(1, 4), To: SquareAt(3, 4)}, // white pawn up two
		{From: SquareAt(6, 3), To: SquareAt(4, 3)}, // black pawn down two
		{From: SquareAt(3, 4), To: SquareAt(4, 3)}, // white takes diagonally
	}
	for i, move := range moves {
		if err := game.MakeMove(move); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	state := game.GetState()
	if len(state.CapturedPieces.White) != 1 || state.CapturedPieces.White[0] != Pawn {
		t.Fatalf("expected white to have captured one pawn, got %v", state.CapturedPieces.White)
	}
	if len(state.CapturedPieces.Black) != 0 {
		t.Fatalf("expected no black captures, got %v", state.CapturedPieces.Black)
	}
	record := state.MoveHistory[2]
	if record.Captured == nil || *record.Captured != Pawn {
		t.Fatalf("expected captured pawn in history, got %+v", record)
	}
}

func TestAvailableMovesQuery(t *testing.T) {
	game := NewGame("test-game")

	moves, err := game.AvailableMoves(SquareAt(0, 1))
	if err != nil {
		t.Fatalf("available moves: %v", err)
	}
	assertMoveSet(t, moves, SquareAt(2, 0), SquareAt(2, 2))

	if _, err := game.AvailableMoves(SquareAt(3, 3)); err == nil {
		t.Fatal("expected error for empty square")
	}
	if _, err := game.AvailableMoves(SquareAt(-1, 0)); err == nil {
		t.Fatal("expected error for off-board square")
	}
}
