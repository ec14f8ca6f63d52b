package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/poiregame/poire-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	now := time.Now().UTC().Truncate(time.Second)
	player := &model.Player{
		ID:              "alice",
		PasswordHash:    "$2a$10$hash",
		Status:          model.StatusOnline,
		LastSeen:        &now,
		ClickMultiplier: 1.5,
		CreatedAt:       now,
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.PasswordHash, retrieved.PasswordHash)
	s.Equal(player.Status, retrieved.Status)
	s.Equal(1.5, retrieved.ClickMultiplier)
	s.Require().NotNil(retrieved.LastSeen)
	s.True(now.Equal(*retrieved.LastSeen))
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestPlayerExists() {
	exists, err := s.storage.PlayerExists(s.ctx, "alice")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice"})

	exists, err = s.storage.PlayerExists(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListPlayersByStatusFollowsSaves() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", Status: model.StatusOnline})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "bob", Status: model.StatusOnline})

	online, err := s.storage.ListPlayersByStatus(s.ctx, model.StatusOnline)
	s.Require().NoError(err)
	s.Len(online, 2)

	// Flipping a player must move them between the status sets
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "bob", Status: model.StatusOffline})

	online, err = s.storage.ListPlayersByStatus(s.ctx, model.StatusOnline)
	s.Require().NoError(err)
	s.Require().Len(online, 1)
	s.Equal(model.PlayerID("alice"), online[0].ID)

	offline, err := s.storage.ListPlayersByStatus(s.ctx, model.StatusOffline)
	s.Require().NoError(err)
	s.Require().Len(offline, 1)
	s.Equal(model.PlayerID("bob"), offline[0].ID)
}

// Session tests

func (s *StorageSuite) session(code, creator string, members ...string) *model.Session {
	ms := make([]model.PlayerID, len(members))
	for i, m := range members {
		ms[i] = model.PlayerID(m)
	}
	return &model.Session{
		Code:            model.SessionCode(code),
		Creator:         model.PlayerID(creator),
		Members:         ms,
		ClickMultiplier: 1.0,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.session("ABC123", "alice", "bob")
	session.Score = 42
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(session.Code, retrieved.Code)
	s.Equal(session.Creator, retrieved.Creator)
	s.Equal(session.Members, retrieved.Members)
	s.Equal(int64(42), retrieved.Score)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "MISSING")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, s.session("ABC123", "alice"))

	exists, err = s.storage.SessionExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestGetSessionByCreator() {
	_ = s.storage.SaveSession(s.ctx, s.session("ABC123", "alice"))

	session, err := s.storage.GetSessionByCreator(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.SessionCode("ABC123"), session.Code)

	_, err = s.storage.GetSessionByCreator(s.ctx, "bob")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestGetSessionsByMember() {
	_ = s.storage.SaveSession(s.ctx, s.session("ABC123", "alice", "carol"))

	sessions, err := s.storage.GetSessionsByMember(s.ctx, "carol")
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.SessionCode("ABC123"), sessions[0].Code)

	sessions, err = s.storage.GetSessionsByMember(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *StorageSuite) TestMemberIndexReconciledOnSave() {
	session := s.session("ABC123", "alice", "carol")
	_ = s.storage.SaveSession(s.ctx, session)

	// Saving without carol must clean up her index entry
	session.Members = nil
	_ = s.storage.SaveSession(s.ctx, session)

	sessions, err := s.storage.GetSessionsByMember(s.ctx, "carol")
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *StorageSuite) TestRenameSession() {
	session := s.session("ABC123", "alice", "bob")
	session.Score = 42
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.Require().NoError(s.storage.RenameSession(s.ctx, "ABC123", "pear-squad"))

	_, err := s.storage.GetSession(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrSessionNotFound)

	renamed, err := s.storage.GetSession(s.ctx, "pear-squad")
	s.Require().NoError(err)
	s.Equal(int64(42), renamed.Score)

	byCreator, err := s.storage.GetSessionByCreator(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.SessionCode("pear-squad"), byCreator.Code)

	byMember, err := s.storage.GetSessionsByMember(s.ctx, "bob")
	s.Require().NoError(err)
	s.Require().Len(byMember, 1)
	s.Equal(model.SessionCode("pear-squad"), byMember[0].Code)
}

func (s *StorageSuite) TestRenameSessionMissing() {
	err := s.storage.RenameSession(s.ctx, "MISSING", "NEW")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Game score tests

func (s *StorageSuite) TestSaveAndGetGameScore() {
	row := &model.GameScore{
		Game:      "snake",
		PlayerID:  "alice",
		BestScore: 120,
		Credits:   30,
		UpdatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.storage.SaveGameScore(s.ctx, row))

	retrieved, err := s.storage.GetGameScore(s.ctx, "snake", "alice")
	s.Require().NoError(err)
	s.Equal(int64(120), retrieved.BestScore)
	s.Equal(int64(30), retrieved.Credits)
}

func (s *StorageSuite) TestGetGameScoreNotFound() {
	_, err := s.storage.GetGameScore(s.ctx, "snake", "alice")
	s.ErrorIs(err, model.ErrScoreNotFound)
}

func (s *StorageSuite) TestTopGameScores() {
	_ = s.storage.SaveGameScore(s.ctx, &model.GameScore{Game: "snake", PlayerID: "alice", BestScore: 120})
	_ = s.storage.SaveGameScore(s.ctx, &model.GameScore{Game: "snake", PlayerID: "bob", BestScore: 300})
	_ = s.storage.SaveGameScore(s.ctx, &model.GameScore{Game: "snake", PlayerID: "carol", BestScore: 80})

	top, err := s.storage.TopGameScores(s.ctx, "snake", 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("bob"), top[0].PlayerID)
	s.Equal(model.PlayerID("alice"), top[1].PlayerID)
}

func (s *StorageSuite) TestTopGameScoresReflectsUpdates() {
	_ = s.storage.SaveGameScore(s.ctx, &model.GameScore{Game: "snake", PlayerID: "alice", BestScore: 120})
	_ = s.storage.SaveGameScore(s.ctx, &model.GameScore{Game: "snake", PlayerID: "bob", BestScore: 100})

	// Raising bob's best must reorder the leaderboard
	_ = s.storage.SaveGameScore(s.ctx, &model.GameScore{Game: "snake", PlayerID: "bob", BestScore: 200})

	top, err := s.storage.TopGameScores(s.ctx, "snake", 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("bob"), top[0].PlayerID)
}
