package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the server configuration. Values come from defaults, then an
// optional YAML file, then environment variables.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Bots    BotConfig     `yaml:"bots"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type  string      `yaml:"type"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	URL            string        `yaml:"url"`
	PoolSize       int           `yaml:"pool_size"`
	MinIdleConns   int           `yaml:"min_idle_conns"`
	GuestPlayerTTL time.Duration `yaml:"guest_player_ttl"`
	MatchRecordTTL time.Duration `yaml:"match_record_ttl"`
}

// AuthConfig holds session settings
type AuthConfig struct {
	SessionDuration   time.Duration `yaml:"session_duration"`
	MinPasswordLength int           `yaml:"min_password_length"`
}

// BotConfig holds automated player settings
type BotConfig struct {
	MaxActive int           `yaml:"max_active"`
	MoveDelay time.Duration `yaml:"move_delay"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // Streams (SSE, WebSocket) are long-lived
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Type: StorageMemory,
			Redis: RedisConfig{
				URL:            "redis://localhost:6379",
				PoolSize:       10,
				MinIdleConns:   2,
				GuestPlayerTTL: 24 * time.Hour,
				MatchRecordTTL: 30 * 24 * time.Hour,
			},
		},
		Auth: AuthConfig{
			SessionDuration:   24 * time.Hour,
			MinPasswordLength: 8,
		},
		Bots: BotConfig{
			MaxActive: 16,
			MoveDelay: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LookupFunc reads an environment variable
type LookupFunc func(key string) (string, bool)

// Load builds the configuration from the YAML file at path (skipped when
// empty) and the environment
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup LookupFunc) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables
func (c *Config) applyEnv(lookup LookupFunc) error {
	if v, ok := lookup("BSGAME_HOST"); ok {
		c.Server.Host = v
	}
	if v, ok := lookup("BSGAME_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BSGAME_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("STORAGE_TYPE"); ok && v != "" {
		c.Storage.Type = v
	}
	if v, ok := lookup("REDIS_URL"); ok && v != "" {
		c.Storage.Redis.URL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup("SESSION_DURATION"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_DURATION: %w", err)
		}
		c.Auth.SessionDuration = d
	}
	if v, ok := lookup("BOT_MAX_ACTIVE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BOT_MAX_ACTIVE: %w", err)
		}
		c.Bots.MaxActive = n
	}
	if v, ok := lookup("BOT_MOVE_DELAY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BOT_MOVE_DELAY: %w", err)
		}
		c.Bots.MoveDelay = d
	}
	return nil
}

// Validate checks the configuration for values the server cannot start with
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.Redis.URL == "" {
			errs = append(errs, errors.New("redis url required when storage type is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid storage type %q: must be %q or %q", c.Storage.Type, StorageMemory, StorageRedis))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("invalid log format %q", c.Log.Format))
	}
	if c.Bots.MaxActive < 0 {
		errs = append(errs, errors.New("bots max_active must not be negative"))
	}
	return errors.Join(errs...)
}

// NewLogger builds the application logger described by the config
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
