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

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	directory *directory.Service
	registry  *registry.Controller
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(directory *directory.Service, registry *registry.Controller) *AuthHandler {
	return &AuthHandler{
		directory: directory,
		registry:  registry,
	}
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("id and password are required"))
		return
	}

	if err := h.directory.Signup(r.Context(), model.PlayerID(req.ID), req.Password); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.NewMessage("player created"))
}

// Login handles POST /login. A successful login marks the player online and
// guarantees their personal session exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("id and password are required"))
		return
	}

	playerID := model.PlayerID(req.ID)
	if err := h.directory.Authenticate(r.Context(), playerID, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.directory.MarkOnline(r.Context(), playerID); err != nil {
		WriteError(w, err)
		return
	}

	code, _, err := h.registry.EnsurePersonalSession(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Login{
		Status:      response.StatusSuccess,
		SessionCode: string(code),
	})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req request.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}

	playerID := model.PlayerID(req.ID)
	if _, err := h.directory.Get(r.Context(), playerID); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.directory.MarkOffline(r.Context(), playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewMessage("logged out"))
}
