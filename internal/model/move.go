package model

// WSMove is an inbound move request from a client.
type WSMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// SimpleMove is a from/to pair, used for highlighting the last move.
type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// MoveRecord is one entry of a game's move history.
type MoveRecord struct {
	Kind     PieceKind  `json:"piece"`
	Player   Player     `json:"player"`
	From     Square     `json:"from"`
	To       Square     `json:"to"`
	Captured *PieceKind `json:"captured,omitempty"`
}

// MatchFoundEvent notifies a queued player that matchmaking paired them.
type MatchFoundEvent struct {
	GameID string `json:"gameID"`
	Color  Player `json:"color"`
}
