package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/poiregame/poire-go/internal/dependencies/clock"
	"github.com/poiregame/poire-go/internal/dependencies/random"
	"github.com/poiregame/poire-go/internal/services/directory"
	"github.com/poiregame/poire-go/internal/services/reaper"
	"github.com/poiregame/poire-go/internal/services/registry"
	"github.com/poiregame/poire-go/internal/services/scores"
	"github.com/poiregame/poire-go/internal/storage"
	"github.com/poiregame/poire-go/internal/storage/memory"
	redisstorage "github.com/poiregame/poire-go/internal/storage/redis"
	sqlitestorage "github.com/poiregame/poire-go/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Directory *directory.Service
	Registry  *registry.Controller
	Scores    *scores.Service
	Reaper    *reaper.Reaper
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// ReaperConfig holds idle reaper timings (optional)
	// If zero value, defaults to reaper.DefaultConfig()
	ReaperConfig reaper.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	reaperCfg := cfg.ReaperConfig
	if reaperCfg.Interval == 0 && reaperCfg.Window == 0 {
		reaperCfg = reaper.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), reaperCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, reaperCfg reaper.Config, logger *slog.Logger) *App {
	directoryService := directory.New(store, clk, logger)
	registryController := registry.NewController(store, clk, rnd, logger)
	scoresService := scores.New(store, clk, logger)
	idleReaper := reaper.New(store, clk, reaperCfg, logger)

	return &App{
		Storage:   store,
		Clock:     clk,
		Random:    rnd,
		Directory: directoryService,
		Registry:  registryController,
		Scores:    scoresService,
		Reaper:    idleReaper,
	}
}
