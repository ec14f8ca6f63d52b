package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/services/registry"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// signupAndLogin registers a player and brings them online with a
// personal session whose code is queued on the mock random
func (s *IntegrationSuite) signupAndLogin(id, code string) model.SessionCode {
	playerID := model.PlayerID(id)
	s.Require().NoError(s.app.Directory.Signup(s.ctx, playerID, "hunter2"))
	s.Require().NoError(s.app.Directory.Authenticate(s.ctx, playerID, "hunter2"))
	s.Require().NoError(s.app.Directory.MarkOnline(s.ctx, playerID))

	s.app.MockRandom.QueueString(code)
	got, created, err := s.app.Registry.EnsurePersonalSession(s.ctx, playerID)
	s.Require().NoError(err)
	s.Require().True(created)
	s.Require().Equal(model.SessionCode(code), got)
	return got
}

// Test: two players click together in one session, upgrade, and part ways
func (s *IntegrationSuite) TestCooperativeClickingFlow() {
	aliceCode := s.signupAndLogin("alice", "ALICE123")
	bobCode := s.signupAndLogin("bob", "BOB12345")

	// bob joins alice's session
	members, err := s.app.Registry.Join(s.ctx, aliceCode, "bob")
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{"bob"}, members)

	// Both click; the score accumulates in the shared session
	_, _, err = s.app.Registry.RecordClick(s.ctx, aliceCode, "alice", 60)
	s.Require().NoError(err)
	_, total, err := s.app.Registry.RecordClick(s.ctx, aliceCode, "bob", 90)
	s.Require().NoError(err)
	s.Equal(int64(150), total)

	// bob buys a session upgrade with the shared score
	mult, remaining, err := s.app.Registry.PurchaseUpgrade(s.ctx, aliceCode, "bob", registry.UpgradeSession)
	s.Require().NoError(err)
	s.Equal(1.5, mult)
	s.Equal(int64(50), remaining)

	// Clicks now land multiplied
	added, total, err := s.app.Registry.RecordClick(s.ctx, aliceCode, "alice", 10)
	s.Require().NoError(err)
	s.Equal(int64(15), added)
	s.Equal(int64(65), total)

	// bob leaves and falls back to his personal session
	_, personal, err := s.app.Registry.Leave(s.ctx, aliceCode, "bob")
	s.Require().NoError(err)
	s.Equal(bobCode, personal)

	active, err := s.app.Registry.ResolveActiveSession(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(bobCode, active.Code)

	// alice's session keeps its score and multiplier
	session, err := s.app.Storage.GetSession(s.ctx, aliceCode)
	s.Require().NoError(err)
	s.Equal(int64(65), session.Score)
	s.Equal(1.5, session.ClickMultiplier)
	s.Empty(session.Members)
}

// Test: idle players are reaped while active ones are kept online
func (s *IntegrationSuite) TestIdleReaping() {
	s.signupAndLogin("alice", "ALICE123")
	s.signupAndLogin("bob", "BOB12345")

	// alice keeps clicking, bob goes quiet
	s.app.MockClock.Advance(10 * time.Second)
	s.app.Directory.Touch(s.ctx, "alice")

	s.app.MockClock.Advance(10 * time.Second)

	swept, err := s.app.Reaper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, swept)

	alice, err := s.app.Directory.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.StatusOnline, alice.Status)

	bob, err := s.app.Directory.Get(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(model.StatusOffline, bob.Status)
}

// Test: a rename does not disturb a session in active use
func (s *IntegrationSuite) TestRenameMidGame() {
	aliceCode := s.signupAndLogin("alice", "ALICE123")
	s.signupAndLogin("bob", "BOB12345")

	_, err := s.app.Registry.Join(s.ctx, aliceCode, "bob")
	s.Require().NoError(err)
	_, _, err = s.app.Registry.RecordClick(s.ctx, aliceCode, "bob", 25)
	s.Require().NoError(err)

	newCode, err := s.app.Registry.Rename(s.ctx, aliceCode, "pear-squad", "alice")
	s.Require().NoError(err)

	score, err := s.app.Registry.Score(s.ctx, newCode)
	s.Require().NoError(err)
	s.Equal(int64(25), score)

	// bob's active session follows the rename
	active, err := s.app.Registry.ResolveActiveSession(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(newCode, active.Code)
}
