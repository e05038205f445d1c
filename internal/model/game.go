package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Noah-Vincenz/chessington-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// GameConnections holds the live sockets observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game is a single match: the board, whose turn it is, the clocks, and the
// connections watching it. The engine itself never validates moves, so the
// game layer is where legality is enforced, by membership of the requested
// destination in the piece's available moves.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Board          *Board         `json:"boardState"`
	ToMove         Player         `json:"toMove"`
	MoveHistory    []MoveRecord   `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *SimpleMove    `json:"lastMove"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// CapturedPieces lists, per side, the kinds that side has taken.
type CapturedPieces struct {
	White []PieceKind `json:"white"`
	Black []PieceKind `json:"black"`
}

const initialClockTime = 600 * time.Second

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		state:       newGameState(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(initialClockTime),
		blackClock:  NewClock(initialClockTime),
	}
}

func newGameState() GameState {
	state := GameState{
		Board:          NewStandardBoard(),
		ToMove:         White,
		MoveHistory:    make([]MoveRecord, 0),
		CapturedPieces: newCapturedPieces(),
		LastMove:       nil,
	}
	state.Players.White = ClientPlayer{TimeLeft: 6000}
	state.Players.Black = ClientPlayer{TimeLeft: 6000}
	return state
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]PieceKind, 0),
		Black: make([]PieceKind, 0),
	}
}

func (g *Game) AddPlayer(playerID string) (Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{
			ID:       playerID,
			Color:    White.String(),
			TimeLeft: 6000,
		}
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{
			ID:       playerID,
			Color:    Black.String(),
			TimeLeft: 6000,
		}
		return Black, nil
	}
	return White, errors.New("game is full")
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.state.Players.White.ID != "" && g.state.Players.White.ID == playerID {
		return true
	}
	if g.state.Players.Black.ID != "" && g.state.Players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// AvailableMoves returns the destinations open to the piece on sq, so clients
// can highlight them before committing a move.
func (g *Game) AvailableMoves(sq Square) ([]Square, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.Board.Contains(sq) {
		return nil, errors.New("square out of bounds")
	}
	piece := g.state.Board.GetPiece(sq)
	if piece == nil {
		return nil, errors.New("no piece at square")
	}
	return piece.AvailableMoves(g.state.Board), nil
}

// MakeMove validates and executes one move. Validation is entirely here: the
// piece's MoveTo performs none.
func (g *Game) MakeMove(move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.validateMove(move); err != nil {
		return err
	}

	switch g.state.ToMove {
	case White:
		g.whiteClock.Stop()
	case Black:
		g.blackClock.Stop()
	}

	g.executeMove(move)

	switch g.state.ToMove {
	case White:
		g.whiteClock.Start()
	case Black:
		g.blackClock.Start()
	}

	g.state.Players.White.TimeLeft = int(g.whiteClock.GetTimeLeft().Milliseconds() / 100)
	g.state.Players.Black.TimeLeft = int(g.blackClock.GetTimeLeft().Milliseconds() / 100)

	return nil
}

func (g *Game) validateMove(move WSMove) error {
	if !g.state.Board.Contains(move.From) || !g.state.Board.Contains(move.To) {
		return errors.New("invalid move, out of bounds")
	}
	piece := g.state.Board.GetPiece(move.From)
	if piece == nil {
		return errors.New("no piece at from square")
	}
	if piece.Player != g.state.ToMove {
		return errors.New("not your turn")
	}
	for _, legal := range piece.AvailableMoves(g.state.Board) {
		if legal == move.To {
			return nil
		}
	}
	return errors.New("invalid move, not legal")
}

func (g *Game) executeMove(move WSMove) {
	piece := g.state.Board.GetPiece(move.From)

	record := MoveRecord{
		Kind:   piece.Kind,
		Player: piece.Player,
		From:   move.From,
		To:     move.To,
	}
	if captured := piece.MoveTo(g.state.Board, move.To); captured != nil {
		kind := captured.Kind
		record.Captured = &kind
		switch piece.Player {
		case White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, kind)
		case Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, kind)
		}
	}
	g.state.MoveHistory = append(g.state.MoveHistory, record)
	g.state.LastMove = &SimpleMove{From: move.From, To: move.To}

	g.switchTurn()

	go g.broadcastState()
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the newcomer.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	g.mu.Lock()
	jsonGameState, err := json.Marshal(g.state)
	g.mu.Unlock()
	if err != nil {
		log.Printf("failed to marshal game state: %v", err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(jsonGameState),
		}); err != nil {
			log.Printf("failed to send state to player %s: %v", playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
