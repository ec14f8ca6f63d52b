package storage

import (
	"context"

	"github.com/poiregame/poire-go/internal/model"
)

// Storage defines the interface for data persistence.
// Implementations report missing rows with the model sentinel errors.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	PlayerExists(ctx context.Context, id model.PlayerID) (bool, error)
	// ListPlayersByStatus returns every player with the given status;
	// used by the idle reaper to scan online players
	ListPlayersByStatus(ctx context.Context, status model.PlayerStatus) ([]*model.Player, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error)
	SessionExists(ctx context.Context, code model.SessionCode) (bool, error)
	GetSessionByCreator(ctx context.Context, creator model.PlayerID) (*model.Session, error)
	// GetSessionsByMember returns every session listing the player as a
	// guest member. The membership invariant means at most one, but the
	// registry scans all of them defensively.
	GetSessionsByMember(ctx context.Context, id model.PlayerID) ([]*model.Session, error)
	// RenameSession swaps a session's code in a single atomic mutation,
	// leaving membership and score untouched. Fails with
	// model.ErrSessionNotFound / model.ErrSessionCodeTaken.
	RenameSession(ctx context.Context, oldCode, newCode model.SessionCode) error

	// Auxiliary per-game score operations
	SaveGameScore(ctx context.Context, score *model.GameScore) error
	GetGameScore(ctx context.Context, game string, id model.PlayerID) (*model.GameScore, error)
	// TopGameScores returns up to limit rows for the game, best score first
	TopGameScores(ctx context.Context, game string, limit int) ([]*model.GameScore, error)
}
