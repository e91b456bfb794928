package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/plebrun/ttroster/internal/dependencies/clock"
	"github.com/plebrun/ttroster/internal/federation"
	"github.com/plebrun/ttroster/internal/notify"
	"github.com/plebrun/ttroster/internal/services/calendar"
	"github.com/plebrun/ttroster/internal/services/defaults"
	"github.com/plebrun/ttroster/internal/services/lineup"
	syncservice "github.com/plebrun/ttroster/internal/services/sync"
	"github.com/plebrun/ttroster/internal/storage"
	"github.com/plebrun/ttroster/internal/storage/memory"
	redisstorage "github.com/plebrun/ttroster/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Clock   clock.Clock

	CalendarService *calendar.Service
	LineupService   *lineup.Service
	DefaultsService *defaults.Service

	// SyncEngine is nil when no federation client is configured
	SyncEngine *syncservice.Engine

	Notifier notify.Notifier
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config

	// Federation is the federation data source (optional)
	// If nil, the sync engine is not wired
	Federation federation.Client
	// SyncConfig tunes the sync engine pools
	SyncConfig syncservice.Config

	// Notifier delivers sync summaries (optional)
	// If nil, notifications are dropped
	Notifier notify.Notifier

	// Clock overrides the system clock (for testing)
	Clock clock.Clock
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis storage requires a redis config")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("creating redis storage: %w", err)
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NewNoop()
	}

	app := &App{
		Storage:         store,
		Clock:           clk,
		CalendarService: calendar.New(clk),
		LineupService:   lineup.NewService(store, clk, logger),
		DefaultsService: defaults.NewService(store, defaults.NewEngine(logger), clk, logger),
		Notifier:        notifier,
	}

	if cfg.Federation != nil {
		app.SyncEngine = syncservice.NewEngine(store, cfg.Federation, notifier, clk, logger, cfg.SyncConfig)
	}

	return app, nil
}
