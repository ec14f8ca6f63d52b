package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")

	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionCodeTaken   = errors.New("session code already in use")
	ErrSessionCodeSame    = errors.New("new session code is unchanged")
	ErrAlreadyCreator     = errors.New("player is the creator of this session")
	ErrAlreadyMember      = errors.New("player is already a member of this session")
	ErrSessionFull        = errors.New("session is full")
	ErrNotMember          = errors.New("player is not a member of this session")
	ErrCreatorCannotLeave = errors.New("the creator cannot leave their own session")
	ErrNotCreator         = errors.New("player is not the creator of this session")
	ErrNotInSession       = errors.New("player is not in this session")
	ErrNoActiveSession    = errors.New("player has no active session")
	ErrInsufficientScore  = errors.New("session score is too low for this upgrade")

	// Game score errors
	ErrScoreNotFound = errors.New("no score recorded for this player")
)
