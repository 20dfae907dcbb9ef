package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/battleship-go/internal/config"
	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/realtime"
	"github.com/mcoot/battleship-go/internal/services/auth"
	"github.com/mcoot/battleship-go/internal/services/bot"
	"github.com/mcoot/battleship-go/internal/services/session"
	"github.com/mcoot/battleship-go/internal/services/stats"
	"github.com/mcoot/battleship-go/internal/storage"
	"github.com/mcoot/battleship-go/internal/storage/memory"
	redisstorage "github.com/mcoot/battleship-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Hub           *realtime.Hub
	SessionRouter *session.Router
	AuthService   *auth.Service
	StatsService  *stats.Service
	BotService    *bot.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// BotConfig holds configuration for the bot service (optional)
	// If zero value, defaults to bot.DefaultConfig()
	BotConfig bot.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// ConfigFrom maps the loaded server configuration onto a factory Config
func ConfigFrom(cfg config.Config, logger *slog.Logger) Config {
	fc := Config{
		AuthConfig: auth.Config{
			SessionDuration:   cfg.Auth.SessionDuration,
			MinPasswordLength: cfg.Auth.MinPasswordLength,
		},
		BotConfig: bot.Config{
			MaxActiveBots: cfg.Bots.MaxActive,
			MoveDelay:     cfg.Bots.MoveDelay,
		},
		Logger:      logger,
		StorageType: cfg.Storage.Type,
	}
	if cfg.Storage.Type == StorageTypeRedis {
		fc.RedisConfig = &redisstorage.Config{
			URL:            cfg.Storage.Redis.URL,
			PoolSize:       cfg.Storage.Redis.PoolSize,
			MinIdleConns:   cfg.Storage.Redis.MinIdleConns,
			GuestPlayerTTL: cfg.Storage.Redis.GuestPlayerTTL,
			MatchRecordTTL: cfg.Storage.Redis.MatchRecordTTL,
		}
	}
	return fc
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default service configs if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	botCfg := cfg.BotConfig
	if botCfg.MaxActiveBots == 0 {
		botCfg = bot.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, botCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing).
// The hub event loop is started here; call Close to stop it.
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	botCfg bot.Config,
	logger *slog.Logger,
) *App {
	hub := realtime.NewHub(logger)
	go hub.Run()

	sessionRouter := session.NewRouter(hub, store, clk, rnd, logger)
	authService := auth.New(store, clk, rnd, authCfg, logger)
	statsService := stats.New(store)
	botService := bot.NewService(store, sessionRouter, hub, bot.DefaultStrategies(rnd), botCfg, clk, rnd, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		Hub:           hub,
		SessionRouter: sessionRouter,
		AuthService:   authService,
		StatsService:  statsService,
		BotService:    botService,
	}
}

// Close stops bots and the hub, then releases storage
func (a *App) Close() error {
	a.BotService.Shutdown()
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
