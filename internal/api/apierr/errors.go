package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/services/directory"
	"github.com/poiregame/poire-go/internal/services/registry"
)

// ErrorResponse is the JSON body of every error response
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodePlayerExists       = "PLAYER_EXISTS"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeAlreadyCreator     = "ALREADY_CREATOR"
	CodeAlreadyMember      = "ALREADY_MEMBER"
	CodeSessionFull        = "SESSION_FULL"
	CodeNotMember          = "NOT_MEMBER"
	CodeCreatorCannotLeave = "CREATOR_CANNOT_LEAVE"
	CodeNotCreator         = "NOT_CREATOR"
	CodeCodeTaken          = "CODE_TAKEN"
	CodeCodeUnchanged      = "CODE_UNCHANGED"
	CodeNotInSession       = "NOT_IN_SESSION"
	CodeNoActiveSession    = "NO_ACTIVE_SESSION"
	CodeInsufficientScore  = "INSUFFICIENT_SCORE"
	CodeScoreNotFound      = "SCORE_NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an error body
type httpError struct {
	status int
	code   string
	msg    string
}

// Error implements the error interface
func (e *httpError) Error() string {
	return e.msg
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Code:    he.code,
		Message: he.msg,
	})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Player errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, CodePlayerNotFound, "Player not found"}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, CodePlayerExists, "Player id already taken"}
	case errors.Is(err, directory.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, CodeInvalidCredentials, "Invalid id or password"}

	// Session errors
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, CodeSessionNotFound, "Session not found"}
	case errors.Is(err, model.ErrAlreadyCreator):
		return &httpError{http.StatusConflict, CodeAlreadyCreator, "Cannot join your own session as a guest"}
	case errors.Is(err, model.ErrAlreadyMember):
		return &httpError{http.StatusConflict, CodeAlreadyMember, "Already a member of this session"}
	case errors.Is(err, model.ErrSessionFull):
		return &httpError{http.StatusConflict, CodeSessionFull, "Session is full"}
	case errors.Is(err, model.ErrNotMember):
		return &httpError{http.StatusForbidden, CodeNotMember, "Not a member of this session"}
	case errors.Is(err, model.ErrCreatorCannotLeave):
		return &httpError{http.StatusForbidden, CodeCreatorCannotLeave, "The creator cannot leave their own session"}
	case errors.Is(err, model.ErrNotCreator):
		return &httpError{http.StatusForbidden, CodeNotCreator, "Only the session creator can do this"}
	case errors.Is(err, model.ErrSessionCodeTaken):
		return &httpError{http.StatusConflict, CodeCodeTaken, "Session code already in use"}
	case errors.Is(err, model.ErrSessionCodeSame):
		return &httpError{http.StatusBadRequest, CodeCodeUnchanged, "New session code is unchanged"}
	case errors.Is(err, model.ErrNotInSession):
		return &httpError{http.StatusForbidden, CodeNotInSession, "Player is not in this session"}
	case errors.Is(err, model.ErrNoActiveSession):
		return &httpError{http.StatusNotFound, CodeNoActiveSession, "Player has no active session"}
	case errors.Is(err, model.ErrInsufficientScore):
		return &httpError{http.StatusConflict, CodeInsufficientScore, "Not enough score for this upgrade"}
	case errors.Is(err, registry.ErrUnknownUpgrade):
		return &httpError{http.StatusBadRequest, CodeInvalidRequest, "Unknown upgrade kind"}

	// Game score errors
	case errors.Is(err, model.ErrScoreNotFound):
		return &httpError{http.StatusNotFound, CodeScoreNotFound, "No score recorded for this player"}

	default:
		// Store failures and anything unexpected: generic 500, details stay
		// in the logs
		return &httpError{http.StatusInternalServerError, CodeInternalError, "Internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, CodeInvalidRequest, message}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, CodeInternalError, "Internal server error"}
}
