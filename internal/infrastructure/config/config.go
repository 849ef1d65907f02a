package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Backend selects the account storage implementation at startup.
const (
	BackendSQL   = "sql"
	BackendNoSQL = "nosql"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DBType selects the repository backend: "sql" or "nosql".
	DBType     string `env:"DB_TYPE, default=sql"`
	CORSOrigin string `env:"BACKEND_CORS_ORIGINS, default=http://localhost:5173"`

	JWT      JWTConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
}

type JWTConfig struct {
	Secret        string `env:"JWT_SECRET_KEY"`
	Algorithm     string `env:"JWT_ALGORITHM, default=HS256"`
	ExpireMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
}

type PostgresConfig struct {
	URL string `env:"SQL_URL"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URL, default=mongodb://localhost:27017"`
	Database string `env:"MONGODB_NAME, default=accounts"`
}

// TokenTTL returns the configured access-token lifetime.
func (c JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.ExpireMinutes) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig
// and rejects combinations the process cannot start with: a missing
// signing secret, an unknown DB_TYPE, or a missing SQL_URL when the
// relational backend is selected.
func Load(ctx context.Context) (*Config, error) {
	return loadWith(ctx, envconfig.OsLookuper())
}

func loadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET_KEY is required")
	}

	switch cfg.DBType {
	case BackendSQL:
		if cfg.Postgres.URL == "" {
			return nil, fmt.Errorf("config: SQL_URL is required when DB_TYPE=sql")
		}
	case BackendNoSQL:
		if cfg.Mongo.URI == "" {
			return nil, fmt.Errorf("config: MONGODB_URL is required when DB_TYPE=nosql")
		}
	default:
		return nil, fmt.Errorf("config: unknown DB_TYPE %q (want sql or nosql)", cfg.DBType)
	}

	return &cfg, nil
}
