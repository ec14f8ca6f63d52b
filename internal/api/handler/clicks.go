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

// ClickHandler handles the click and upgrade endpoints
type ClickHandler struct {
	registry  *registry.Controller
	directory *directory.Service
}

// NewClickHandler creates a new click handler
func NewClickHandler(registry *registry.Controller, directory *directory.Service) *ClickHandler {
	return &ClickHandler{
		registry:  registry,
		directory: directory,
	}
}

// Record handles POST /poire: add a click batch to a session score
func (h *ClickHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req request.ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Session == "" || req.ID == "" {
		WriteError(w, NewInvalidRequestError("session and id are required"))
		return
	}
	if req.Click <= 0 {
		WriteError(w, NewInvalidRequestError("click must be a positive integer"))
		return
	}

	playerID := model.PlayerID(req.ID)
	added, total, err := h.registry.RecordClick(r.Context(),
		model.SessionCode(req.Session), playerID, req.Click)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.directory.Touch(r.Context(), playerID)

	response.JSON(w, http.StatusOK, response.Click{
		Status: response.StatusSuccess,
		Added:  added,
		Total:  total,
	})
}

// Score handles GET /get_poires?session=
func (h *ClickHandler) Score(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("session")
	if code == "" {
		WriteError(w, NewInvalidRequestError("session is required"))
		return
	}

	score, err := h.registry.Score(r.Context(), model.SessionCode(code))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Score{
		Status:  response.StatusSuccess,
		Session: code,
		Score:   score,
	})
}

// Upgrade handles POST /upgrade: spend session score on a multiplier
func (h *ClickHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	var req request.UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Session == "" || req.ID == "" || req.Kind == "" {
		WriteError(w, NewInvalidRequestError("session, id and kind are required"))
		return
	}

	playerID := model.PlayerID(req.ID)
	multiplier, total, err := h.registry.PurchaseUpgrade(r.Context(),
		model.SessionCode(req.Session), playerID, registry.UpgradeKind(req.Kind))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.directory.Touch(r.Context(), playerID)

	response.JSON(w, http.StatusOK, response.Upgrade{
		Status:     response.StatusSuccess,
		Kind:       req.Kind,
		Multiplier: multiplier,
		Score:      total,
	})
}
