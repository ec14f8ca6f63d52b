package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/poiregame/poire-go/internal/api/request"
	"github.com/poiregame/poire-go/internal/api/response"
	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/services/directory"
	"github.com/poiregame/poire-go/internal/services/scores"
)

// ScoresHandler handles the auxiliary per-game score endpoints
type ScoresHandler struct {
	scores    *scores.Service
	directory *directory.Service
}

// NewScoresHandler creates a new scores handler
func NewScoresHandler(scores *scores.Service, directory *directory.Service) *ScoresHandler {
	return &ScoresHandler{
		scores:    scores,
		directory: directory,
	}
}

// Submit handles POST /scores/{game}
func (h *ScoresHandler) Submit(w http.ResponseWriter, r *http.Request) {
	game := mux.Vars(r)["game"]

	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}
	if req.Score < 0 || req.Credits < 0 {
		WriteError(w, NewInvalidRequestError("score and credits must not be negative"))
		return
	}

	playerID := model.PlayerID(req.ID)
	row, err := h.scores.Submit(r.Context(), game, playerID, req.Score, req.Credits)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.directory.Touch(r.Context(), playerID)

	response.JSON(w, http.StatusOK, response.GameScoreFromModel(row))
}

// Get handles GET /scores/{game}?id=
func (h *ScoresHandler) Get(w http.ResponseWriter, r *http.Request) {
	game := mux.Vars(r)["game"]

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}

	row, err := h.scores.Get(r.Context(), game, model.PlayerID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameScoreFromModel(row))
}

// Leaderboard handles GET /scores/{game}/leaderboard?limit=
func (h *ScoresHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	game := mux.Vars(r)["game"]

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	rows, err := h.scores.Leaderboard(r.Context(), game, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(game, rows))
}
