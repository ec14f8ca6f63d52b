package registry

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/poiregame/poire-go/internal/dependencies/clock"
	"github.com/poiregame/poire-go/internal/dependencies/random"
	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/storage"
)

const (
	// SessionCodeLength is the length of generated session codes
	SessionCodeLength = 8
	// SessionCodeAlphabet is the characters used in generated codes (avoid confusing chars)
	SessionCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// UpgradeKind selects which multiplier an upgrade purchase raises
type UpgradeKind string

const (
	UpgradeSession UpgradeKind = "session"
	UpgradePlayer  UpgradeKind = "player"
)

const (
	upgradeStep     = 0.5
	upgradeBaseCost = 100
)

// ErrUnknownUpgrade is returned for an unrecognized upgrade kind
var ErrUnknownUpgrade = errors.New("unknown upgrade kind")

// Controller is the single source of truth for which session a player is
// active in, and for all session membership and score mutations
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	// membershipMu serializes membership mutations (ensure/join/leave/rename)
	// across all sessions; the keyed locks serialize score read-modify-writes
	// per session. Membership holders take keyed locks second, click paths
	// take only one keyed lock, so the ordering cannot deadlock.
	membershipMu sync.Mutex
	locks        *sessionLocks
}

// NewController creates a new session registry controller
func NewController(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
		locks:   newSessionLocks(),
	}
}

// EnsurePersonalSession returns the code of the player's personal session,
// creating it on first need. The second return reports whether a session was
// created by this call. Idempotent.
func (c *Controller) EnsurePersonalSession(ctx context.Context, playerID model.PlayerID) (model.SessionCode, bool, error) {
	c.membershipMu.Lock()
	defer c.membershipMu.Unlock()
	return c.ensurePersonalSessionLocked(ctx, playerID)
}

func (c *Controller) ensurePersonalSessionLocked(ctx context.Context, playerID model.PlayerID) (model.SessionCode, bool, error) {
	existing, err := c.storage.GetSessionByCreator(ctx, playerID)
	if err == nil {
		return existing.Code, false, nil
	}
	if !errors.Is(err, model.ErrSessionNotFound) {
		return "", false, err
	}

	// Generate a unique code, retrying on collision
	var code model.SessionCode
	for {
		code = model.SessionCode(c.random.String(SessionCodeLength, SessionCodeAlphabet))
		exists, err := c.storage.SessionExists(ctx, code)
		if err != nil {
			return "", false, err
		}
		if !exists {
			break
		}
	}

	now := c.clock.Now()
	session := &model.Session{
		Code:            code,
		Creator:         playerID,
		Members:         []model.PlayerID{},
		Score:           0,
		ClickMultiplier: 1.0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return "", false, err
	}

	c.logger.Info("personal session created",
		slog.String("player", string(playerID)),
		slog.String("code", string(code)),
	)
	return code, true, nil
}

// ResolveActiveSession determines the player's current active session.
// Membership in another player's session wins over the player's own
// creator session: once a player joins a group, their personal session is
// dormant until they leave.
func (c *Controller) ResolveActiveSession(ctx context.Context, playerID model.PlayerID) (*model.Session, error) {
	joined, err := c.storage.GetSessionsByMember(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if len(joined) > 0 {
		// The join invariant means at most one, but pick the most recently
		// touched one if the store reports more
		active := joined[0]
		for _, s := range joined[1:] {
			if s.UpdatedAt.After(active.UpdatedAt) {
				active = s
			}
		}
		return active, nil
	}

	personal, err := c.storage.GetSessionByCreator(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, model.ErrNoActiveSession
		}
		return nil, err
	}
	return personal, nil
}

// Join adds the player to the session as a guest member, implicitly removing
// them from any session they were a member of before. Returns the updated
// member list.
func (c *Controller) Join(ctx context.Context, code model.SessionCode, playerID model.PlayerID) ([]model.PlayerID, error) {
	c.membershipMu.Lock()
	defer c.membershipMu.Unlock()

	unlock := c.locks.acquire(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}
	if session.Creator == playerID {
		return nil, model.ErrAlreadyCreator
	}
	if session.HasMember(playerID) {
		return nil, model.ErrAlreadyMember
	}
	if session.IsFull() {
		return nil, model.ErrSessionFull
	}

	// Removal first: a mid-way failure leaves the player in their personal
	// session rather than in two groups, and the call is safe to retry
	previous, err := c.storage.GetSessionsByMember(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for _, prev := range previous {
		if prev.Code == code {
			continue
		}
		if err := c.removeMember(ctx, prev, playerID); err != nil {
			return nil, err
		}
	}

	session.Members = append(session.Members, playerID)
	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session.Members, nil
}

// removeMember drops the player from a session under that session's lock
func (c *Controller) removeMember(ctx context.Context, session *model.Session, playerID model.PlayerID) error {
	unlock := c.locks.acquire(session.Code)
	defer unlock()

	// Re-read under the lock; a click may have changed the row
	current, err := c.storage.GetSession(ctx, session.Code)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if !current.RemoveMember(playerID) {
		return nil
	}
	current.UpdatedAt = c.clock.Now()
	return c.storage.SaveSession(ctx, current)
}

// Leave removes the player from the session's member list. The player falls
// back to their personal session, whose code is returned for the response
// contract.
func (c *Controller) Leave(ctx context.Context, code model.SessionCode, playerID model.PlayerID) ([]model.PlayerID, model.SessionCode, error) {
	c.membershipMu.Lock()
	defer c.membershipMu.Unlock()

	unlock := c.locks.acquire(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, "", err
	}
	if session.Creator == playerID {
		return nil, "", model.ErrCreatorCannotLeave
	}
	if !session.HasMember(playerID) {
		return nil, "", model.ErrNotMember
	}

	session.RemoveMember(playerID)
	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, "", err
	}

	// The personal session exists from login, but ensure defensively
	personal, _, err := c.ensurePersonalSessionLocked(ctx, playerID)
	if err != nil {
		return nil, "", err
	}

	return session.Members, personal, nil
}

// Rename changes a session's code. Creator-only; the new code is truncated
// to the maximum length; only the identifier changes.
func (c *Controller) Rename(ctx context.Context, oldCode, newCode model.SessionCode, requesterID model.PlayerID) (model.SessionCode, error) {
	c.membershipMu.Lock()
	defer c.membershipMu.Unlock()

	unlock := c.locks.acquire(oldCode)
	defer unlock()

	session, err := c.storage.GetSession(ctx, oldCode)
	if err != nil {
		return "", err
	}
	if session.Creator != requesterID {
		return "", model.ErrNotCreator
	}

	truncated := model.SessionCode(strings.TrimSpace(string(newCode)))
	if len(truncated) > model.MaxCodeLength {
		truncated = truncated[:model.MaxCodeLength]
	}
	if truncated == oldCode {
		return "", model.ErrSessionCodeSame
	}

	exists, err := c.storage.SessionExists(ctx, truncated)
	if err != nil {
		return "", err
	}
	if exists {
		return "", model.ErrSessionCodeTaken
	}

	if err := c.storage.RenameSession(ctx, oldCode, truncated); err != nil {
		return "", err
	}
	return truncated, nil
}

// RecordClick adds a click batch to the session score. The amount added is
// round-half-up of rawClicks * session multiplier * the player's personal
// multiplier. Returns the added amount and the new total.
func (c *Controller) RecordClick(ctx context.Context, code model.SessionCode, playerID model.PlayerID, rawClicks int64) (int64, int64, error) {
	unlock := c.locks.acquire(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return 0, 0, err
	}

	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return 0, 0, err
	}

	added := roundHalfUp(float64(rawClicks) * session.ClickMultiplier * player.ClickMultiplier)
	session.Score += added
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return 0, 0, err
	}
	return added, session.Score, nil
}

// Score returns the session's accumulated score
func (c *Controller) Score(ctx context.Context, code model.SessionCode) (int64, error) {
	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return 0, err
	}
	return session.Score, nil
}

// Roster returns the session's full roster: creator plus members, deduped
func (c *Controller) Roster(ctx context.Context, code model.SessionCode) (*model.Session, []model.PlayerID, error) {
	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	return session, session.Roster(), nil
}

// VerifyPlayerInSession reports the session roster if the player belongs to
// the session (as creator or member), and ErrNotInSession otherwise
func (c *Controller) VerifyPlayerInSession(ctx context.Context, code model.SessionCode, playerID model.PlayerID) (*model.Session, []model.PlayerID, error) {
	session, roster, err := c.Roster(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if !session.Includes(playerID) {
		return nil, nil, model.ErrNotInSession
	}
	return session, roster, nil
}

// PurchaseUpgrade spends session score to raise a click multiplier: the
// session's own, or the buyer's personal one. The cost scales with the
// multiplier being raised. Returns the new multiplier and remaining score.
func (c *Controller) PurchaseUpgrade(ctx context.Context, code model.SessionCode, playerID model.PlayerID, kind UpgradeKind) (float64, int64, error) {
	unlock := c.locks.acquire(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return 0, 0, err
	}
	if !session.Includes(playerID) {
		return 0, 0, model.ErrNotInSession
	}

	var player *model.Player
	current := session.ClickMultiplier
	switch kind {
	case UpgradeSession:
	case UpgradePlayer:
		player, err = c.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return 0, 0, err
		}
		current = player.ClickMultiplier
	default:
		return 0, 0, ErrUnknownUpgrade
	}

	cost := roundHalfUp(upgradeBaseCost * current)
	if session.Score < cost {
		return 0, 0, model.ErrInsufficientScore
	}

	session.Score -= cost
	session.UpdatedAt = c.clock.Now()

	var updated float64
	if kind == UpgradeSession {
		session.ClickMultiplier += upgradeStep
		updated = session.ClickMultiplier
	} else {
		player.ClickMultiplier += upgradeStep
		updated = player.ClickMultiplier
		if err := c.storage.SavePlayer(ctx, player); err != nil {
			return 0, 0, err
		}
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return 0, 0, err
	}
	return updated, session.Score, nil
}

// roundHalfUp rounds to the nearest integer, halves away from zero toward
// positive infinity (round-half-up, the documented click arithmetic)
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// ControllerInterface for dependency injection
type ControllerInterface interface {
	EnsurePersonalSession(ctx context.Context, playerID model.PlayerID) (model.SessionCode, bool, error)
	ResolveActiveSession(ctx context.Context, playerID model.PlayerID) (*model.Session, error)
	Join(ctx context.Context, code model.SessionCode, playerID model.PlayerID) ([]model.PlayerID, error)
	Leave(ctx context.Context, code model.SessionCode, playerID model.PlayerID) ([]model.PlayerID, model.SessionCode, error)
	Rename(ctx context.Context, oldCode, newCode model.SessionCode, requesterID model.PlayerID) (model.SessionCode, error)
	RecordClick(ctx context.Context, code model.SessionCode, playerID model.PlayerID, rawClicks int64) (int64, int64, error)
	Score(ctx context.Context, code model.SessionCode) (int64, error)
	Roster(ctx context.Context, code model.SessionCode) (*model.Session, []model.PlayerID, error)
	VerifyPlayerInSession(ctx context.Context, code model.SessionCode, playerID model.PlayerID) (*model.Session, []model.PlayerID, error)
	PurchaseUpgrade(ctx context.Context, code model.SessionCode, playerID model.PlayerID, kind UpgradeKind) (float64, int64, error)
}

var _ ControllerInterface = (*Controller)(nil)
