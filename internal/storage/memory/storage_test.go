package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/poiregame/poire-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:              "alice",
		PasswordHash:    "$2a$10$hash",
		Status:          model.StatusOffline,
		ClickMultiplier: 1.0,
		CreatedAt:       time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.PasswordHash, retrieved.PasswordHash)
	s.Equal(player.Status, retrieved.Status)
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

func (s *StorageSuite) TestListPlayersByStatus() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", Status: model.StatusOnline})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "bob", Status: model.StatusOffline})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "carol", Status: model.StatusOnline})

	online, err := s.storage.ListPlayersByStatus(s.ctx, model.StatusOnline)
	s.Require().NoError(err)
	s.Len(online, 2)
	for _, p := range online {
		s.Equal(model.StatusOnline, p.Status)
	}
}

func (s *StorageSuite) TestSavedPlayerIsIsolated() {
	player := &model.Player{ID: "alice", Status: model.StatusOnline}
	_ = s.storage.SavePlayer(s.ctx, player)

	// Mutating the caller's copy must not affect the stored one
	player.Status = model.StatusOffline

	retrieved, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.StatusOnline, retrieved.Status)
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
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.session("ABC123", "alice", "bob")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(session.Code, retrieved.Code)
	s.Equal(session.Creator, retrieved.Creator)
	s.Equal(session.Members, retrieved.Members)
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
	_ = s.storage.SaveSession(s.ctx, s.session("DEF456", "bob"))

	sessions, err := s.storage.GetSessionsByMember(s.ctx, "carol")
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.SessionCode("ABC123"), sessions[0].Code)

	// Creatorship is not membership
	sessions, err = s.storage.GetSessionsByMember(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *StorageSuite) TestGetSessionsByMemberAfterRemoval() {
	session := s.session("ABC123", "alice", "carol")
	_ = s.storage.SaveSession(s.ctx, session)

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
	s.Equal(model.PlayerID("alice"), renamed.Creator)

	// Indexes must follow the rename
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
		UpdatedAt: time.Now(),
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
	_ = s.storage.SaveGameScore(s.ctx, &model.GameScore{Game: "tetris", PlayerID: "dave", BestScore: 999})

	top, err := s.storage.TopGameScores(s.ctx, "snake", 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("bob"), top[0].PlayerID)
	s.Equal(model.PlayerID("alice"), top[1].PlayerID)
}
