package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LoginResult:
		o.printLoginResult(v)
	case SessionResult:
		o.printSessionResult(v)
	case MembersResult:
		o.printMembersResult(v)
	case LeaveResult:
		o.printLeaveResult(v)
	case SessionInfo:
		o.printSessionInfo(v)
	case ClickResult:
		o.printClickResult(v)
	case ScoreResult:
		o.printScoreResult(v)
	case UpgradeResult:
		o.printUpgradeResult(v)
	case GameScoreResult:
		o.printGameScoreResult(v)
	case LeaderboardResult:
		o.printLeaderboardResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// LoginResult response type (matches API)
type LoginResult struct {
	Status      string `json:"status"`
	SessionCode string `json:"session_code"`
}

// SessionResult response type for /create and /change_session
type SessionResult struct {
	Status      string `json:"status"`
	SessionCode string `json:"session_code"`
	Created     bool   `json:"created,omitempty"`
}

// MembersResult response type for /join
type MembersResult struct {
	Status  string   `json:"status"`
	Members []string `json:"members"`
}

// LeaveResult response type for /leave
type LeaveResult struct {
	Status              string   `json:"status"`
	Members             []string `json:"members"`
	PersonalSessionCode string   `json:"personal_session_code"`
}

// SessionInfo response type for /verify_session
type SessionInfo struct {
	Status      string   `json:"status"`
	SessionCode string   `json:"session_code"`
	Creator     string   `json:"creator"`
	Players     []string `json:"players"`
}

// ClickResult response type for /poire
type ClickResult struct {
	Status string `json:"status"`
	Added  int64  `json:"added"`
	Total  int64  `json:"total"`
}

// ScoreResult response type for /get_poires
type ScoreResult struct {
	Status  string `json:"status"`
	Session string `json:"session"`
	Score   int64  `json:"score"`
}

// UpgradeResult response type for /upgrade
type UpgradeResult struct {
	Status     string  `json:"status"`
	Kind       string  `json:"kind"`
	Multiplier float64 `json:"multiplier"`
	Score      int64   `json:"score"`
}

// GameScoreResult response type for /scores/{game}
type GameScoreResult struct {
	Status    string `json:"status"`
	Game      string `json:"game"`
	Player    string `json:"player"`
	BestScore int64  `json:"best_score"`
	Credits   int64  `json:"credits"`
}

// LeaderboardEntry is one leaderboard row
type LeaderboardEntry struct {
	Player    string `json:"player"`
	BestScore int64  `json:"best_score"`
}

// LeaderboardResult response type for /scores/{game}/leaderboard
type LeaderboardResult struct {
	Status  string             `json:"status"`
	Game    string             `json:"game"`
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printLoginResult(r LoginResult) {
	fmt.Println("Logged in")
	fmt.Printf("Personal session: %s\n", r.SessionCode)
}

func (o *Output) printSessionResult(r SessionResult) {
	fmt.Printf("Session: %s\n", r.SessionCode)
	if r.Created {
		fmt.Println("(newly created)")
	}
}

func (o *Output) printMembersResult(r MembersResult) {
	fmt.Printf("Members (%d): %s\n", len(r.Members), strings.Join(r.Members, ", "))
}

func (o *Output) printLeaveResult(r LeaveResult) {
	fmt.Println("Left session")
	fmt.Printf("Remaining members: %s\n", strings.Join(r.Members, ", "))
	fmt.Printf("Back in personal session: %s\n", r.PersonalSessionCode)
}

func (o *Output) printSessionInfo(s SessionInfo) {
	fmt.Printf("Session: %s\n", s.SessionCode)
	fmt.Printf("Creator: %s\n", s.Creator)
	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		marker := ""
		if p == s.Creator {
			marker = " [creator]"
		}
		fmt.Printf("  - %s%s\n", p, marker)
	}
}

func (o *Output) printClickResult(c ClickResult) {
	fmt.Printf("Added: %d\n", c.Added)
	fmt.Printf("Total: %d\n", c.Total)
}

func (o *Output) printScoreResult(s ScoreResult) {
	fmt.Printf("Session: %s\n", s.Session)
	fmt.Printf("Score: %d\n", s.Score)
}

func (o *Output) printUpgradeResult(u UpgradeResult) {
	fmt.Printf("Upgrade: %s\n", u.Kind)
	fmt.Printf("Multiplier: %.2f\n", u.Multiplier)
	fmt.Printf("Remaining score: %d\n", u.Score)
}

func (o *Output) printGameScoreResult(g GameScoreResult) {
	fmt.Printf("Game: %s\n", g.Game)
	fmt.Printf("Player: %s\n", g.Player)
	fmt.Printf("Best Score: %d\n", g.BestScore)
	fmt.Printf("Credits: %d\n", g.Credits)
}

func (o *Output) printLeaderboardResult(l LeaderboardResult) {
	fmt.Printf("Leaderboard: %s\n", l.Game)
	for i, e := range l.Entries {
		fmt.Printf("  %d. %s - %d\n", i+1, e.Player, e.BestScore)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
