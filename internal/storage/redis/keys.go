package redis

import (
	"fmt"

	"github.com/poiregame/poire-go/internal/model"
)

// Key prefix for all clicker-game data
const keyPrefix = "poire"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// statusIndexKey returns the Redis key for the SET of player ids with a status
func statusIndexKey(status model.PlayerStatus) string {
	return fmt.Sprintf("%s:idx:status:%s", keyPrefix, status)
}

// sessionKey returns the Redis key for a Session
func sessionKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, code)
}

// creatorIndexKey returns the Redis key for the creator -> session code index
func creatorIndexKey(creator model.PlayerID) string {
	return fmt.Sprintf("%s:idx:creator:%s", keyPrefix, creator)
}

// memberIndexKey returns the Redis key for the member -> session code index
func memberIndexKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:idx:member:%s", keyPrefix, id)
}

// gameScoreKey returns the Redis key for a per-game score row
func gameScoreKey(game string, id model.PlayerID) string {
	return fmt.Sprintf("%s:score:%s:%s", keyPrefix, game, id)
}

// leaderboardKey returns the Redis key for the per-game best-score ZSET
func leaderboardKey(game string) string {
	return fmt.Sprintf("%s:idx:leaderboard:%s", keyPrefix, game)
}
