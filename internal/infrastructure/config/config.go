package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the immutable configuration surface, read once at startup and
// passed by value into constructors. Nothing reaches for it globally.
type Config struct {
	Port           string        `env:"PORT,      default=8080"`
	Env            string        `env:"ENV,       default=development"`
	LogLevel       string        `env:"LOG_LEVEL, default=info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`

	JWT      JWTConfig
	AdminDB  DatabaseConfig `env:", prefix=ADMIN_DB_"`
	ClientDB DatabaseConfig `env:", prefix=CLIENT_DB_"`
	Redis    RedisConfig
}

// JWTConfig holds the token signing settings.
type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET"`
	Algorithm string        `env:"JWT_ALGORITHM, default=HS256"`
	TokenTTL  time.Duration `env:"JWT_TOKEN_TTL, default=30m"`
}

// DatabaseConfig holds one realm's PostgreSQL connection settings. The two
// realms get independent copies via the ADMIN_DB_/CLIENT_DB_ prefixes.
type DatabaseConfig struct {
	Host     string `env:"HOST,     default=localhost"`
	Port     int    `env:"PORT,     default=5432"`
	Name     string `env:"NAME"`
	User     string `env:"USER,     default=edgerelay"`
	Password string `env:"PASSWORD"`
	SSLMode  string `env:"SSLMODE,  default=disable"`
	MaxConns int    `env:"MAX_CONNS, default=10"`
	MinConns int    `env:"MIN_CONNS, default=2"`
}

// URL renders the pgx connection string including pool bounds.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d&pool_min_conns=%d",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode, d.MaxConns, d.MinConns,
	)
}

// RedisConfig holds the session cache connection settings.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
