package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/poiregame/poire-go/internal/api/handler"
	"github.com/poiregame/poire-go/internal/api/middleware"
	"github.com/poiregame/poire-go/internal/services/directory"
	"github.com/poiregame/poire-go/internal/services/registry"
	"github.com/poiregame/poire-go/internal/services/scores"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Directory *directory.Service
	Registry  *registry.Controller
	Scores    *scores.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.Directory, cfg.Registry)
	sessionHandler := handler.NewSessionHandler(cfg.Registry, cfg.Directory)
	clickHandler := handler.NewClickHandler(cfg.Registry, cfg.Directory)
	scoresHandler := handler.NewScoresHandler(cfg.Scores, cfg.Directory)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.CORS())

	// Accounts
	r.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Session membership
	r.HandleFunc("/create", sessionHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/join", sessionHandler.Join).Methods(http.MethodPost)
	r.HandleFunc("/leave", sessionHandler.Leave).Methods(http.MethodPost)
	r.HandleFunc("/change_session", sessionHandler.ChangeSession).Methods(http.MethodPost)
	r.HandleFunc("/verify_session", sessionHandler.VerifySession).Methods(http.MethodGet)
	r.HandleFunc("/verify_player_in_session", sessionHandler.VerifyPlayerInSession).Methods(http.MethodGet)

	// Clicks
	r.HandleFunc("/poire", clickHandler.Record).Methods(http.MethodPost)
	r.HandleFunc("/get_poires", clickHandler.Score).Methods(http.MethodGet)
	r.HandleFunc("/upgrade", clickHandler.Upgrade).Methods(http.MethodPost)

	// Auxiliary single-player game scores
	r.HandleFunc("/scores/{game}", scoresHandler.Submit).Methods(http.MethodPost)
	r.HandleFunc("/scores/{game}", scoresHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/scores/{game}/leaderboard", scoresHandler.Leaderboard).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Answer CORS preflights for every route
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"success"}`))
}
