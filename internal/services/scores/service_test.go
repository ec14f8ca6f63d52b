package scores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/poiregame/poire-go/internal/dependencies/mocks"
	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/storage/memory"
	"github.com/poiregame/poire-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	for _, id := range []string{"alice", "bob", "carol"} {
		player := &model.Player{
			ID:              model.PlayerID(id),
			Status:          model.StatusOffline,
			ClickMultiplier: 1.0,
			CreatedAt:       s.clock.Now(),
		}
		s.Require().NoError(s.storage.SavePlayer(s.ctx, player))
	}
}

func (s *ServiceSuite) TestSubmitCreatesRow() {
	row, err := s.service.Submit(s.ctx, "snake", "alice", 120, 30)
	s.Require().NoError(err)
	s.Equal(int64(120), row.BestScore)
	s.Equal(int64(30), row.Credits)
}

func (s *ServiceSuite) TestSubmitUnknownPlayerRejected() {
	_, err := s.service.Submit(s.ctx, "snake", "ghost", 10, 0)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestSubmitBestScoreOnlyIncreases() {
	_, err := s.service.Submit(s.ctx, "snake", "alice", 120, 30)
	s.Require().NoError(err)

	row, err := s.service.Submit(s.ctx, "snake", "alice", 80, 45)
	s.Require().NoError(err)
	s.Equal(int64(120), row.BestScore)
	s.Equal(int64(45), row.Credits)

	row, err = s.service.Submit(s.ctx, "snake", "alice", 200, 50)
	s.Require().NoError(err)
	s.Equal(int64(200), row.BestScore)
}

func (s *ServiceSuite) TestRowsAreScopedPerGame() {
	_, err := s.service.Submit(s.ctx, "snake", "alice", 120, 0)
	s.Require().NoError(err)
	_, err = s.service.Submit(s.ctx, "tetris", "alice", 999, 0)
	s.Require().NoError(err)

	row, err := s.service.Get(s.ctx, "snake", "alice")
	s.Require().NoError(err)
	s.Equal(int64(120), row.BestScore)
}

func (s *ServiceSuite) TestGetMissingRow() {
	_, err := s.service.Get(s.ctx, "snake", "alice")
	s.ErrorIs(err, model.ErrScoreNotFound)
}

func (s *ServiceSuite) TestLeaderboardOrdering() {
	_, err := s.service.Submit(s.ctx, "snake", "alice", 120, 0)
	s.Require().NoError(err)
	_, err = s.service.Submit(s.ctx, "snake", "bob", 300, 0)
	s.Require().NoError(err)
	_, err = s.service.Submit(s.ctx, "snake", "carol", 80, 0)
	s.Require().NoError(err)

	rows, err := s.service.Leaderboard(s.ctx, "snake", 10)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal(model.PlayerID("bob"), rows[0].PlayerID)
	s.Equal(model.PlayerID("alice"), rows[1].PlayerID)
	s.Equal(model.PlayerID("carol"), rows[2].PlayerID)
}

func (s *ServiceSuite) TestLeaderboardRespectsLimit() {
	_, err := s.service.Submit(s.ctx, "snake", "alice", 120, 0)
	s.Require().NoError(err)
	_, err = s.service.Submit(s.ctx, "snake", "bob", 300, 0)
	s.Require().NoError(err)

	rows, err := s.service.Leaderboard(s.ctx, "snake", 1)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(model.PlayerID("bob"), rows[0].PlayerID)
}
