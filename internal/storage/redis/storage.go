package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	other := model.StatusOffline
	if player.Status == model.StatusOffline {
		other = model.StatusOnline
	}

	// Keep the status index sets in sync with the row
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.SAdd(ctx, statusIndexKey(player.Status), string(player.ID))
	pipe.SRem(ctx, statusIndexKey(other), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) PlayerExists(ctx context.Context, id model.PlayerID) (bool, error) {
	exists, err := s.client.Exists(ctx, playerKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListPlayersByStatus(ctx context.Context, status model.PlayerStatus) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, statusIndexKey(status)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index entry with no row; skip
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue
		}
		if player.Status == status {
			players = append(players, &player)
		}
	}
	return players, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Reconcile member index entries against the previous row, so a member
	// removed by this save does not keep a dangling index entry
	var removed []model.PlayerID
	prev, err := s.GetSession(ctx, session.Code)
	if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		return err
	}
	if prev != nil {
		for _, m := range prev.Members {
			if !session.HasMember(m) {
				removed = append(removed, m)
			}
		}
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.Code), data, 0)
	pipe.Set(ctx, creatorIndexKey(session.Creator), string(session.Code), 0)
	for _, m := range session.Members {
		pipe.Set(ctx, memberIndexKey(m), string(session.Code), 0)
	}
	for _, m := range removed {
		pipe.Del(ctx, memberIndexKey(m))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) SessionExists(ctx context.Context, code model.SessionCode) (bool, error) {
	exists, err := s.client.Exists(ctx, sessionKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) GetSessionByCreator(ctx context.Context, creator model.PlayerID) (*model.Session, error) {
	code, err := s.client.Get(ctx, creatorIndexKey(creator)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return s.GetSession(ctx, model.SessionCode(code))
}

func (s *Storage) GetSessionsByMember(ctx context.Context, id model.PlayerID) ([]*model.Session, error) {
	code, err := s.client.Get(ctx, memberIndexKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	session, err := s.GetSession(ctx, model.SessionCode(code))
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, nil // Stale index entry
		}
		return nil, err
	}
	if !session.HasMember(id) {
		return nil, nil
	}
	return []*model.Session{session}, nil
}

func (s *Storage) RenameSession(ctx context.Context, oldCode, newCode model.SessionCode) error {
	session, err := s.GetSession(ctx, oldCode)
	if err != nil {
		return err
	}

	taken, err := s.SessionExists(ctx, newCode)
	if err != nil {
		return err
	}
	if taken {
		return model.ErrSessionCodeTaken
	}

	session.Code = newCode
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(oldCode))
	pipe.Set(ctx, sessionKey(newCode), data, 0)
	pipe.Set(ctx, creatorIndexKey(session.Creator), string(newCode), 0)
	for _, m := range session.Members {
		pipe.Set(ctx, memberIndexKey(m), string(newCode), 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Game score operations

func (s *Storage) SaveGameScore(ctx context.Context, score *model.GameScore) error {
	data, err := json.Marshal(score)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, gameScoreKey(score.Game, score.PlayerID), data, 0)
	pipe.ZAdd(ctx, leaderboardKey(score.Game), redis.Z{
		Score:  float64(score.BestScore),
		Member: string(score.PlayerID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGameScore(ctx context.Context, game string, id model.PlayerID) (*model.GameScore, error) {
	data, err := s.client.Get(ctx, gameScoreKey(game, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrScoreNotFound
		}
		return nil, err
	}

	var score model.GameScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *Storage) TopGameScores(ctx context.Context, game string, limit int) ([]*model.GameScore, error) {
	if limit <= 0 {
		limit = 10
	}

	ids, err := s.client.ZRevRange(ctx, leaderboardKey(game), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameScoreKey(game, model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]*model.GameScore, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var score model.GameScore
		if err := json.Unmarshal([]byte(val.(string)), &score); err != nil {
			continue
		}
		scores = append(scores, &score)
	}
	return scores, nil
}
