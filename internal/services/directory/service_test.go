package directory

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
}

func (s *ServiceSuite) TestSignupCreatesOfflinePlayer() {
	err := s.service.Signup(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	player, err := s.service.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.StatusOffline, player.Status)
	s.Nil(player.LastSeen)
	s.Equal(1.0, player.ClickMultiplier)
	s.NotEqual("hunter2", player.PasswordHash)
}

func (s *ServiceSuite) TestSignupDuplicateRejected() {
	s.Require().NoError(s.service.Signup(s.ctx, "alice", "hunter2"))

	err := s.service.Signup(s.ctx, "alice", "other")
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *ServiceSuite) TestAuthenticateSucceeds() {
	s.Require().NoError(s.service.Signup(s.ctx, "alice", "hunter2"))

	s.NoError(s.service.Authenticate(s.ctx, "alice", "hunter2"))
}

func (s *ServiceSuite) TestAuthenticateWrongPassword() {
	s.Require().NoError(s.service.Signup(s.ctx, "alice", "hunter2"))

	err := s.service.Authenticate(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestAuthenticateUnknownPlayer() {
	// Unknown id and bad password are indistinguishable
	err := s.service.Authenticate(s.ctx, "ghost", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestMarkOnlineSetsStatusAndLastSeen() {
	s.Require().NoError(s.service.Signup(s.ctx, "alice", "hunter2"))

	s.Require().NoError(s.service.MarkOnline(s.ctx, "alice"))

	player, err := s.service.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.StatusOnline, player.Status)
	s.Require().NotNil(player.LastSeen)
	s.Equal(s.clock.Now(), *player.LastSeen)
}

func (s *ServiceSuite) TestMarkOfflineAfterOnline() {
	s.Require().NoError(s.service.Signup(s.ctx, "alice", "hunter2"))
	s.Require().NoError(s.service.MarkOnline(s.ctx, "alice"))

	s.clock.Advance(5 * time.Second)
	s.Require().NoError(s.service.MarkOffline(s.ctx, "alice"))

	player, err := s.service.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.StatusOffline, player.Status)
}

func (s *ServiceSuite) TestMarkOnlineUnknownPlayerIsNoop() {
	s.NoError(s.service.MarkOnline(s.ctx, "ghost"))
	s.NoError(s.service.MarkOffline(s.ctx, "ghost"))
}

func (s *ServiceSuite) TestTouchRefreshesLastSeenOnly() {
	s.Require().NoError(s.service.Signup(s.ctx, "alice", "hunter2"))
	s.Require().NoError(s.service.MarkOnline(s.ctx, "alice"))

	s.clock.Advance(10 * time.Second)
	s.service.Touch(s.ctx, "alice")

	player, err := s.service.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.StatusOnline, player.Status)
	s.Require().NotNil(player.LastSeen)
	s.Equal(s.clock.Now(), *player.LastSeen)
}

func (s *ServiceSuite) TestTouchUnknownPlayerIsNoop() {
	s.NotPanics(func() {
		s.service.Touch(s.ctx, "ghost")
	})
}
