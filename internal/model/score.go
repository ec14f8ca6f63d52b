package model

import "time"

// GameScore is a per-game record for the auxiliary single-player games:
// the player's best score and their credit balance for that game
type GameScore struct {
	Game      string
	PlayerID  PlayerID
	BestScore int64
	Credits   int64
	UpdatedAt time.Time
}

// Clone returns a copy of the score row
func (g *GameScore) Clone() *GameScore {
	cp := *g
	return &cp
}
