package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int           `env:"PORT" envDefault:"8080"`
	Debug        bool          `env:"DEBUG" envDefault:"false"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"./storefront.db"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"devsecret"`
	JWTTTL       time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BcryptCost   int           `env:"BCRYPT_COST"`
	SeedDatabase bool          `env:"SEED_DATABASE" envDefault:"false"`
	CORSOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &cfg, nil
}
