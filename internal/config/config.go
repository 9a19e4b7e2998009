package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var backends = []string{BackendMemory, BackendFile, BackendRedis, BackendPostgres}

// Config holds all application configuration. Values come from built-in
// defaults, then an optional TOML file named by KANBAN_CONFIG, then KANBAN_*
// environment variables.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Server    ServerConfig    `toml:"server"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Log       LogConfig       `toml:"log"`
}

// StorageConfig selects where the board collection is persisted.
type StorageConfig struct {
	Backend string `toml:"backend"`
	Key     string `toml:"key"`
	Dir     string `toml:"dir"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"` //nolint:gosec // G117: DB connection config
	DBName   string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
	MaxConns int    `toml:"max_conns"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"` //nolint:gosec // G117: Redis connection config
	DB       int    `toml:"db"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	CORSOrigins  []string      `toml:"cors_origins"`
	WebDir       string        `toml:"web_dir"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when nothing is set.
// Defaults are safe for local development only.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     "boards",
			Dir:     "data",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "kanban",
			DBName:   "kanban_dev",
			SSLMode:  "disable",
			MaxConns: 10,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			CORSOrigins:  []string{"http://localhost:5173"},
		},
		RateLimit: RateLimitConfig{
			RPS:   20,
			Burst: 40,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from the optional TOML file and environment
// variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("KANBAN_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config.Load: decoding %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides fields with any KANBAN_* variables that are set.
func (c *Config) applyEnv() error {
	var err error

	c.Storage.Backend = strings.ToLower(getEnv("KANBAN_STORAGE_BACKEND", c.Storage.Backend))
	c.Storage.Key = getEnv("KANBAN_STORAGE_KEY", c.Storage.Key)
	c.Storage.Dir = getEnv("KANBAN_STORAGE_DIR", c.Storage.Dir)

	c.Database.Host = getEnv("KANBAN_DB_HOST", c.Database.Host)
	if c.Database.Port, err = getEnvInt("KANBAN_DB_PORT", c.Database.Port); err != nil {
		return err
	}
	c.Database.User = getEnv("KANBAN_DB_USER", c.Database.User)
	c.Database.Password = getEnv("KANBAN_DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("KANBAN_DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("KANBAN_DB_SSLMODE", c.Database.SSLMode)
	if c.Database.MaxConns, err = getEnvInt("KANBAN_DB_MAX_CONNS", c.Database.MaxConns); err != nil {
		return err
	}

	c.Redis.Addr = getEnv("KANBAN_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("KANBAN_REDIS_PASSWORD", c.Redis.Password)
	if c.Redis.DB, err = getEnvInt("KANBAN_REDIS_DB", c.Redis.DB); err != nil {
		return err
	}

	c.Server.Addr = getEnv("KANBAN_SERVER_ADDR", c.Server.Addr)
	if c.Server.ReadTimeout, err = getEnvDuration("KANBAN_SERVER_READ_TIMEOUT", c.Server.ReadTimeout); err != nil {
		return err
	}
	if c.Server.WriteTimeout, err = getEnvDuration("KANBAN_SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout); err != nil {
		return err
	}
	c.Server.CORSOrigins = getEnvList("KANBAN_CORS_ORIGINS", c.Server.CORSOrigins)
	c.Server.WebDir = getEnv("KANBAN_WEB_DIR", c.Server.WebDir)

	if c.RateLimit.RPS, err = getEnvFloat("KANBAN_RATE_LIMIT_RPS", c.RateLimit.RPS); err != nil {
		return err
	}
	if c.RateLimit.Burst, err = getEnvInt("KANBAN_RATE_LIMIT_BURST", c.RateLimit.Burst); err != nil {
		return err
	}

	c.Log.Level = getEnv("KANBAN_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("KANBAN_LOG_FORMAT", c.Log.Format)

	return nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if !slices.Contains(backends, c.Storage.Backend) {
		return fmt.Errorf("KANBAN_STORAGE_BACKEND must be one of %s, got %q", strings.Join(backends, "|"), c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("KANBAN_STORAGE_KEY must not be empty")
	}
	if c.Storage.Backend == BackendFile && c.Storage.Dir == "" {
		return errors.New("KANBAN_STORAGE_DIR is required for the file backend")
	}

	if c.Storage.Backend == BackendPostgres {
		if c.Database.SSLMode == "disable" {
			log.Warn().Msg("KANBAN_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("KANBAN_DB_PORT must be 1-65535, got %d", c.Database.Port)
		}
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("KANBAN_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
		}
	}

	if c.Redis.DB < 0 {
		return fmt.Errorf("KANBAN_REDIS_DB must be >= 0, got %d", c.Redis.DB)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("KANBAN_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("KANBAN_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.RateLimit.RPS <= 0 {
		return fmt.Errorf("KANBAN_RATE_LIMIT_RPS must be positive, got %g", c.RateLimit.RPS)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("KANBAN_RATE_LIMIT_BURST must be >= 1, got %d", c.RateLimit.Burst)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
