package reaper

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiregame/poire-go/internal/dependencies/clock"
	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/storage"
)

// Config holds idle reaper timing settings
type Config struct {
	// Interval is how often the sweep runs
	Interval time.Duration
	// Window is how stale a player's liveness timestamp may be before they
	// are flipped offline
	Window time.Duration
}

// DefaultConfig returns the default reaper timings
func DefaultConfig() Config {
	return Config{
		Interval: 10 * time.Second,
		Window:   15 * time.Second,
	}
}

// Reaper periodically demotes players to offline when they stop refreshing
// their liveness timestamp. It is a coarse mechanism: a briefly-stale but
// still-connected player may be flipped offline and will come back on their
// next request.
type Reaper struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config
}

// New creates a new idle reaper
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Reaper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	return &Reaper{
		storage: storage,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
	}
}

// Run sweeps on a ticker until the context is cancelled. Sweep failures are
// logged and never stop the loop.
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("idle reaper started",
		slog.Duration("interval", r.cfg.Interval),
		slog.Duration("window", r.cfg.Window),
	)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("idle reaper stopped")
			return
		case <-ticker.C:
			swept, err := r.Sweep(ctx)
			if err != nil {
				r.logger.Warn("idle sweep failed", slog.String("error", err.Error()))
				continue
			}
			if swept > 0 {
				r.logger.Info("idle sweep", slog.Int("players_offline", swept))
			}
		}
	}
}

// Sweep flips every online player whose liveness timestamp is older than the
// window to offline, returning how many were flipped
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	players, err := r.storage.ListPlayersByStatus(ctx, model.StatusOnline)
	if err != nil {
		return 0, err
	}

	cutoff := r.clock.Now().Add(-r.cfg.Window)
	swept := 0
	for _, p := range players {
		if p.LastSeen != nil && p.LastSeen.After(cutoff) {
			continue
		}
		p.Status = model.StatusOffline
		if err := r.storage.SavePlayer(ctx, p); err != nil {
			r.logger.Warn("could not mark player offline",
				slog.String("player", string(p.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		swept++
	}
	return swept, nil
}
