package config

import (
	"time"

	"noteful/utils"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type DatabaseConfig struct {
	URI             string
	DatabaseName    string
	Collection      string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	RetryWrites     bool
	ConnectTimeout  time.Duration
	OpTimeout       time.Duration
}

// LoadDatabaseConfig reads the MONGO_* variables. With GO_ENV=test the
// TEST_MONGO_URI / MONGO_DB_TEST pair takes precedence.
func LoadDatabaseConfig() DatabaseConfig {
	cfg := DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "noteful"),
		Collection:      utils.GetEnvAsString("NOTES_COLLECTION", "notes"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: utils.GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", 60*time.Second),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
		ConnectTimeout:  utils.GetEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		OpTimeout:       utils.GetEnvAsDuration("MONGO_OP_TIMEOUT", 5*time.Second),
	}

	if IsTest() {
		cfg.URI = utils.GetEnvAsString("TEST_MONGO_URI", cfg.URI)
		cfg.DatabaseName = utils.GetEnvAsString("MONGO_DB_TEST", cfg.DatabaseName+"_test")
	}
	return cfg
}

// ClientOptions builds the driver options for the shared pool.
func (c DatabaseConfig) ClientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize).
		SetMaxConnIdleTime(c.MaxConnIdleTime).
		SetRetryWrites(c.RetryWrites).
		SetConnectTimeout(c.ConnectTimeout).
		SetServerSelectionTimeout(c.ConnectTimeout)
}
