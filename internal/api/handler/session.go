package handler

import (
	"encoding/json"
	"net/http"

	"github.com/poiregame/poire-go/internal/api/request"
	"github.com/poiregame/poire-go/internal/api/response"
	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/services/directory"
	"github.com/poiregame/poire-go/internal/services/registry"
)

// SessionHandler handles session membership endpoints
type SessionHandler struct {
	registry  *registry.Controller
	directory *directory.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *registry.Controller, directory *directory.Service) *SessionHandler {
	return &SessionHandler{
		registry:  registry,
		directory: directory,
	}
}

// Create handles POST /create: ensure the player's personal session.
// 201 when the session was created by this call, 200 when it already existed.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}

	playerID := model.PlayerID(req.ID)
	code, created, err := h.registry.EnsurePersonalSession(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.directory.Touch(r.Context(), playerID)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.CreateSession{
		Status:      response.StatusSuccess,
		SessionCode: string(code),
		Created:     created,
	})
}

// Join handles POST /join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Code == "" || req.ID == "" {
		WriteError(w, NewInvalidRequestError("code and id are required"))
		return
	}

	playerID := model.PlayerID(req.ID)
	members, err := h.registry.Join(r.Context(), model.SessionCode(req.Code), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.directory.Touch(r.Context(), playerID)

	response.JSON(w, http.StatusOK, response.Join{
		Status:  response.StatusSuccess,
		Members: playersToStrings(members),
	})
}

// Leave handles POST /leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	var req request.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Code == "" || req.ID == "" {
		WriteError(w, NewInvalidRequestError("code and id are required"))
		return
	}

	playerID := model.PlayerID(req.ID)
	members, personal, err := h.registry.Leave(r.Context(), model.SessionCode(req.Code), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.directory.Touch(r.Context(), playerID)

	response.JSON(w, http.StatusOK, response.Leave{
		Status:              response.StatusSuccess,
		Members:             playersToStrings(members),
		PersonalSessionCode: string(personal),
	})
}

// ChangeSession handles POST /change_session: rename a session
func (h *SessionHandler) ChangeSession(w http.ResponseWriter, r *http.Request) {
	var req request.ChangeSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" || req.OldCode == "" || req.NewCode == "" {
		WriteError(w, NewInvalidRequestError("id, old_code and new_code are required"))
		return
	}

	playerID := model.PlayerID(req.ID)
	newCode, err := h.registry.Rename(r.Context(),
		model.SessionCode(req.OldCode), model.SessionCode(req.NewCode), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.directory.Touch(r.Context(), playerID)

	response.JSON(w, http.StatusOK, response.ChangeSession{
		Status:      response.StatusSuccess,
		SessionCode: string(newCode),
	})
}

// VerifySession handles GET /verify_session?id=
func (h *SessionHandler) VerifySession(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}

	playerID := model.PlayerID(id)
	session, err := h.registry.ResolveActiveSession(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.directory.Touch(r.Context(), playerID)

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, session.Roster()))
}

// VerifyPlayerInSession handles GET /verify_player_in_session?username=&session_code=
func (h *SessionHandler) VerifyPlayerInSession(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	code := r.URL.Query().Get("session_code")
	if username == "" || code == "" {
		WriteError(w, NewInvalidRequestError("username and session_code are required"))
		return
	}

	session, roster, err := h.registry.VerifyPlayerInSession(r.Context(),
		model.SessionCode(code), model.PlayerID(username))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, roster))
}

// playersToStrings converts player ids for JSON responses
func playersToStrings(ids []model.PlayerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
