package model

import "fmt"

// Player is the side a piece belongs to. It only determines pawn advance
// direction and the enemy relation.
type Player uint8

const (
	White Player = iota
	Black
)

func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}

func (p Player) String() string {
	if p == White {
		return "white"
	}
	return "black"
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*p = White
	case "black":
		*p = Black
	default:
		return fmt.Errorf("unknown player %q", text)
	}
	return nil
}

// GamePlayer is a participant as the service layer sees them.
type GamePlayer struct {
	ID       string
	Color    Player
	TimeLeft int
}

// ClientPlayer is the client-facing view of a seat in a game.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}
