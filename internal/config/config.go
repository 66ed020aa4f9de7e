package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the console.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Session  SessionConfig
	Remote   RemoteConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds the optional audit DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Token store backends.
const (
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

// SessionConfig defines how console clients and their tokens are kept.
type SessionConfig struct {
	CookieName          string
	CookieSecure        bool
	TokenStore          string
	TokenKeyPrefix      string
	TokenTTLHours       int
	SweepIntervalSecond int
	IdleTTLMinutes      int
}

// RemoteConfig points at the REST API the console fronts.
type RemoteConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	store := strings.ToLower(getEnv("TOKEN_STORE", TokenStoreRedis))
	if store != TokenStoreRedis && store != TokenStoreMemory {
		return nil, fmt.Errorf("invalid TOKEN_STORE: %q", store)
	}

	baseURL := strings.TrimRight(getEnv("REMOTE_API_BASE_URL", "http://127.0.0.1:3000/api"), "/")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "admin-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 5)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			CookieName:          getEnv("CONSOLE_CLIENT_COOKIE", "console_client"),
			CookieSecure:        getEnvAsBool("CONSOLE_COOKIE_SECURE", false),
			TokenStore:          store,
			TokenKeyPrefix:      getEnv("TOKEN_STORE_PREFIX", "console:client"),
			TokenTTLHours:       getEnvAsInt("TOKEN_STORE_TTL_HOURS", 24*7),
			SweepIntervalSecond: getEnvAsInt("SESSION_SWEEP_INTERVAL_SECONDS", 300),
			IdleTTLMinutes:      getEnvAsInt("SESSION_IDLE_TTL_MINUTES", 60),
		},
		Remote: RemoteConfig{
			BaseURL:        baseURL,
			TimeoutSeconds: getEnvAsInt("REMOTE_API_TIMEOUT_SECONDS", 15),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL is how long an unused token pair stays in durable storage.
func (s SessionConfig) TokenTTL() time.Duration {
	if s.TokenTTLHours <= 0 {
		return 0
	}
	return time.Duration(s.TokenTTLHours) * time.Hour
}

// SweepInterval returns how often idle clients are dropped from memory.
func (s SessionConfig) SweepInterval() time.Duration {
	if s.SweepIntervalSecond <= 0 {
		return 0
	}
	return time.Duration(s.SweepIntervalSecond) * time.Second
}

// IdleTTL returns how long a client may stay unused before it is swept.
func (s SessionConfig) IdleTTL() time.Duration {
	return time.Duration(s.IdleTTLMinutes) * time.Minute
}

// Timeout returns the per-call deadline for remote API requests.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
