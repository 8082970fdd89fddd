package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret         string        `env:"JWT_SECRET"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	AdminTokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL, default=12h"`

	Election ElectionConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
}

type ElectionConfig struct {
	// AllowedDomain is the required suffix on voter email addresses.
	AllowedDomain string `env:"ALLOWED_EMAIL_DOMAIN, default=student.csuniv.edu"`
	// VotingStart/VotingEnd bound the casting window (RFC 3339). Leave both
	// unset to keep voting open at all times.
	VotingStart time.Time `env:"VOTING_START"`
	VotingEnd   time.Time `env:"VOTING_END"`
	// CodeTTL expires pending verification challenges. The default of zero
	// keeps them until consumed.
	CodeTTL    time.Duration `env:"CODE_TTL, default=0"`
	RosterPath string        `env:"ROSTER_PATH, default=candidates.json"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=data/votes.db"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT, default=587"`
	Username string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	From     string        `env:"SMTP_FROM"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT, default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
