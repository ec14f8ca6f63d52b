package model

import "time"

// PlayerID is the player's chosen username, picked at signup and immutable
type PlayerID string

// PlayerStatus is a player's coarse liveness state
type PlayerStatus string

const (
	StatusOnline  PlayerStatus = "online"
	StatusOffline PlayerStatus = "offline"
)

// Player represents a registered account
type Player struct {
	ID           PlayerID
	PasswordHash string // bcrypt hash, never plaintext
	Status       PlayerStatus
	LastSeen     *time.Time // nil until the first authenticated request
	// ClickMultiplier is the player's personal click factor, raised by upgrades
	ClickMultiplier float64
	CreatedAt       time.Time
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	cp := *p
	if p.LastSeen != nil {
		t := *p.LastSeen
		cp.LastSeen = &t
	}
	return &cp
}
