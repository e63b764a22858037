package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"noteful/utils"
)

type Config struct {
	Env       string
	LogLevel  string
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	AllowedOrigins  []string
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// Enabled reports whether a Redis URL was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func (c RateLimitConfig) Enabled() bool {
	return c.RPS > 0
}

func IsTest() bool {
	return os.Getenv("GO_ENV") == "test"
}

// Load reads the .env files (if any) and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if err := utils.LoadEnvFile(envFiles...); err != nil {
		return Config{}, fmt.Errorf("error loading env file: %w", err)
	}

	cfg := Config{
		Env:      utils.GetEnvAsString("GO_ENV", "development"),
		LogLevel: utils.GetEnvAsString("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:            utils.GetEnvAsString("PORT", "8080"),
			GinMode:         utils.GetEnvAsString("GIN_MODE", "release"),
			ShutdownTimeout: utils.GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxBodyBytes:    int64(utils.GetEnvAsInt("MAX_BODY_BYTES", 1<<20)),
			AllowedOrigins:  utils.GetEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: LoadDatabaseConfig(),
		Cache: CacheConfig{
			RedisURL: utils.GetEnvAsString("REDIS_URL", ""),
			TTL:      utils.GetEnvAsDuration("NOTE_CACHE_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			RPS:   utils.GetEnvAsFloat("RATE_LIMIT_RPS", 0),
			Burst: utils.GetEnvAsInt("RATE_LIMIT_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error
	if c.Database.URI == "" {
		problems = append(problems, errors.New("MONGO_URI must not be empty"))
	}
	if c.Database.DatabaseName == "" {
		problems = append(problems, errors.New("MONGO_DB must not be empty"))
	}
	if c.Database.MaxPoolSize > 0 && c.Database.MinPoolSize > c.Database.MaxPoolSize {
		problems = append(problems, fmt.Errorf("MONGO_MIN_POOL_SIZE (%d) exceeds MONGO_MAX_POOL_SIZE (%d)",
			c.Database.MinPoolSize, c.Database.MaxPoolSize))
	}
	if c.Database.OpTimeout <= 0 {
		problems = append(problems, errors.New("MONGO_OP_TIMEOUT must be positive"))
	}
	if c.Server.Port == "" {
		problems = append(problems, errors.New("PORT must not be empty"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		problems = append(problems, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.RateLimit.Enabled() && c.RateLimit.Burst < 1 {
		problems = append(problems, errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled"))
	}
	return errors.Join(problems...)
}

// LogSummary prints which settings are in effect without leaking the URIs.
func (c Config) LogSummary(logger *slog.Logger) {
	logger.Info("configuration loaded",
		"env", c.Env,
		"port", c.Server.Port,
		"mongo_uri_set", c.Database.URI != "",
		"mongo_db", c.Database.DatabaseName,
		"collection", c.Database.Collection,
		"max_pool_size", c.Database.MaxPoolSize,
		"min_pool_size", c.Database.MinPoolSize,
		"cache_enabled", c.Cache.Enabled(),
		"rate_limit_rps", c.RateLimit.RPS,
	)
}
