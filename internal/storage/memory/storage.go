package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on save and load so callers never share state with
// the store, matching the behavior of the serialized backends.
type Storage struct {
	mu sync.RWMutex

	players  map[model.PlayerID]*model.Player
	sessions map[model.SessionCode]*model.Session
	scores   map[scoreKey]*model.GameScore
}

type scoreKey struct {
	game     string
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:  make(map[model.PlayerID]*model.Player),
		sessions: make(map[model.SessionCode]*model.Session),
		scores:   make(map[scoreKey]*model.GameScore),
	}
}

var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player.Clone()
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) PlayerExists(ctx context.Context, id model.PlayerID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.players[id]
	return ok, nil
}

func (s *Storage) ListPlayersByStatus(ctx context.Context, status model.PlayerStatus) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.Player
	for _, p := range s.players {
		if p.Status == status {
			players = append(players, p.Clone())
		}
	}
	return players, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Code] = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[code]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Storage) SessionExists(ctx context.Context, code model.SessionCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[code]
	return ok, nil
}

func (s *Storage) GetSessionByCreator(ctx context.Context, creator model.PlayerID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.sessions {
		if session.Creator == creator {
			return session.Clone(), nil
		}
	}
	return nil, model.ErrSessionNotFound
}

func (s *Storage) GetSessionsByMember(ctx context.Context, id model.PlayerID) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sessions []*model.Session
	for _, session := range s.sessions {
		if session.HasMember(id) {
			sessions = append(sessions, session.Clone())
		}
	}
	return sessions, nil
}

func (s *Storage) RenameSession(ctx context.Context, oldCode, newCode model.SessionCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[oldCode]
	if !ok {
		return model.ErrSessionNotFound
	}
	if _, taken := s.sessions[newCode]; taken {
		return model.ErrSessionCodeTaken
	}
	delete(s.sessions, oldCode)
	session.Code = newCode
	s.sessions[newCode] = session
	return nil
}

// Game score operations

func (s *Storage) SaveGameScore(ctx context.Context, score *model.GameScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[scoreKey{game: score.Game, playerID: score.PlayerID}] = score.Clone()
	return nil
}

func (s *Storage) GetGameScore(ctx context.Context, game string, id model.PlayerID) (*model.GameScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[scoreKey{game: game, playerID: id}]
	if !ok {
		return nil, model.ErrScoreNotFound
	}
	return score.Clone(), nil
}

func (s *Storage) TopGameScores(ctx context.Context, game string, limit int) ([]*model.GameScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var scores []*model.GameScore
	for key, score := range s.scores {
		if key.game == game {
			scores = append(scores, score.Clone())
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].BestScore != scores[j].BestScore {
			return scores[i].BestScore > scores[j].BestScore
		}
		return scores[i].PlayerID < scores[j].PlayerID
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}
