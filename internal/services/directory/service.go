package directory

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/poiregame/poire-go/internal/dependencies/clock"
	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/storage"
)

// ErrInvalidCredentials is returned for both an unknown player and a wrong
// password, so callers cannot enumerate accounts
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service tracks player credentials and online/offline status
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player directory service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Signup creates a new player account with a hashed password
func (s *Service) Signup(ctx context.Context, id model.PlayerID, password string) error {
	exists, err := s.storage.PlayerExists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrPlayerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	player := &model.Player{
		ID:              id,
		PasswordHash:    string(hash),
		Status:          model.StatusOffline,
		ClickMultiplier: 1.0,
		CreatedAt:       s.clock.Now(),
	}

	return s.storage.SavePlayer(ctx, player)
}

// Authenticate verifies a player's password
func (s *Service) Authenticate(ctx context.Context, id model.PlayerID, password string) error {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Get retrieves a player by id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// MarkOnline flips the player online and refreshes their liveness timestamp.
// An unknown id is a no-op.
func (s *Service) MarkOnline(ctx context.Context, id model.PlayerID) error {
	return s.setStatus(ctx, id, model.StatusOnline)
}

// MarkOffline flips the player offline. An unknown id is a no-op.
func (s *Service) MarkOffline(ctx context.Context, id model.PlayerID) error {
	return s.setStatus(ctx, id, model.StatusOffline)
}

func (s *Service) setStatus(ctx context.Context, id model.PlayerID, status model.PlayerStatus) error {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil
		}
		return err
	}

	now := s.clock.Now()
	player.Status = status
	player.LastSeen = &now
	return s.storage.SavePlayer(ctx, player)
}

// Touch refreshes the player's liveness timestamp without changing status.
// Called on every request that carries a player id; an unknown id is a no-op.
func (s *Service) Touch(ctx context.Context, id model.PlayerID) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return
	}

	now := s.clock.Now()
	player.LastSeen = &now
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		s.logger.Warn("liveness refresh failed",
			slog.String("player", string(id)),
			slog.String("error", err.Error()),
		)
	}
}
