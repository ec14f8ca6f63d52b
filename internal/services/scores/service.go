package scores

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiregame/poire-go/internal/dependencies/clock"
	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/storage"
)

// Service manages the auxiliary single-player game score tables: a best
// score and a credit balance per player per game
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new game scores service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Submit records a finished run. The stored best score only ever increases;
// credits are set to the reported balance.
func (s *Service) Submit(ctx context.Context, game string, playerID model.PlayerID, score, credits int64) (*model.GameScore, error) {
	exists, err := s.storage.PlayerExists(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrPlayerNotFound
	}

	row, err := s.storage.GetGameScore(ctx, game, playerID)
	if err != nil {
		if !errors.Is(err, model.ErrScoreNotFound) {
			return nil, err
		}
		row = &model.GameScore{Game: game, PlayerID: playerID}
	}

	if score > row.BestScore {
		row.BestScore = score
	}
	row.Credits = credits
	row.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveGameScore(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Get returns the player's score row for a game
func (s *Service) Get(ctx context.Context, game string, playerID model.PlayerID) (*model.GameScore, error) {
	return s.storage.GetGameScore(ctx, game, playerID)
}

// Leaderboard returns the top rows for a game, best score first
func (s *Service) Leaderboard(ctx context.Context, game string, limit int) ([]*model.GameScore, error) {
	return s.storage.TopGameScores(ctx, game, limit)
}
