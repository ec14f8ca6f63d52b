package response

import (
	"time"

	"github.com/poiregame/poire-go/internal/model"
)

// Every response carries a status field: "success" or "error"
const StatusSuccess = "success"

// Message is a payload-free success response
type Message struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewMessage creates a success message response
func NewMessage(message string) Message {
	return Message{Status: StatusSuccess, Message: message}
}

// Login is the response for a successful login
type Login struct {
	Status      string `json:"status"`
	SessionCode string `json:"session_code"`
}

// CreateSession is the response for /create
type CreateSession struct {
	Status      string `json:"status"`
	SessionCode string `json:"session_code"`
	Created     bool   `json:"created"`
}

// Join is the response for a successful join
type Join struct {
	Status  string   `json:"status"`
	Members []string `json:"members"`
}

// Leave is the response for a successful leave
type Leave struct {
	Status              string   `json:"status"`
	Members             []string `json:"members"`
	PersonalSessionCode string   `json:"personal_session_code"`
}

// ChangeSession is the response for a successful rename
type ChangeSession struct {
	Status      string `json:"status"`
	SessionCode string `json:"session_code"`
}

// Session describes a resolved session with its roster
type Session struct {
	Status      string   `json:"status"`
	SessionCode string   `json:"session_code"`
	Creator     string   `json:"creator"`
	Players     []string `json:"players"`
}

// SessionFromModel builds a Session response from a session and its roster
func SessionFromModel(s *model.Session, roster []model.PlayerID) Session {
	players := make([]string, len(roster))
	for i, p := range roster {
		players[i] = string(p)
	}
	return Session{
		Status:      StatusSuccess,
		SessionCode: string(s.Code),
		Creator:     string(s.Creator),
		Players:     players,
	}
}

// Click is the response for a recorded click batch
type Click struct {
	Status string `json:"status"`
	Added  int64  `json:"added"`
	Total  int64  `json:"total"`
}

// Score is the response for a session score read
type Score struct {
	Status  string `json:"status"`
	Session string `json:"session"`
	Score   int64  `json:"score"`
}

// Upgrade is the response for a purchased upgrade
type Upgrade struct {
	Status     string  `json:"status"`
	Kind       string  `json:"kind"`
	Multiplier float64 `json:"multiplier"`
	Score      int64   `json:"score"`
}

// GameScore is a per-game score row
type GameScore struct {
	Status    string    `json:"status"`
	Game      string    `json:"game"`
	Player    string    `json:"player"`
	BestScore int64     `json:"best_score"`
	Credits   int64     `json:"credits"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameScoreFromModel converts a model.GameScore
func GameScoreFromModel(g *model.GameScore) GameScore {
	return GameScore{
		Status:    StatusSuccess,
		Game:      g.Game,
		Player:    string(g.PlayerID),
		BestScore: g.BestScore,
		Credits:   g.Credits,
		UpdatedAt: g.UpdatedAt,
	}
}

// LeaderboardEntry is one row of a per-game leaderboard
type LeaderboardEntry struct {
	Player    string `json:"player"`
	BestScore int64  `json:"best_score"`
}

// Leaderboard is the response for a per-game leaderboard
type Leaderboard struct {
	Status  string             `json:"status"`
	Game    string             `json:"game"`
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts ranked score rows
func LeaderboardFromModel(game string, rows []*model.GameScore) Leaderboard {
	entries := make([]LeaderboardEntry, len(rows))
	for i, r := range rows {
		entries[i] = LeaderboardEntry{
			Player:    string(r.PlayerID),
			BestScore: r.BestScore,
		}
	}
	return Leaderboard{Status: StatusSuccess, Game: game, Entries: entries}
}
