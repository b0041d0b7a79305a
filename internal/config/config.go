package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	MongoURI     string `env:"MONGO_URI"`
	DBName       string `env:"DB_NAME" envDefault:"produck"`
	StoreDriver  string `env:"STORE_DRIVER" envDefault:"mongo"`
	Transactions bool   `env:"MONGO_TRANSACTIONS" envDefault:"false"`

	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"720h"`
	// AllowClaimedIdentity lets trusted callers act as the userId named in the
	// request body or query string.
	AllowClaimedIdentity bool `env:"ALLOW_CLAIMED_IDENTITY" envDefault:"false"`

	PublicDir   string   `env:"PUBLIC_DIR" envDefault:"./public"`
	UploadMaxMB int64    `env:"UPLOAD_MAX_MB" envDefault:"25"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DevMode  bool   `env:"DEV_MODE" envDefault:"false"`
}

// Load reads an optional .env file from envFile (or ./.env when empty) and
// then parses the process environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg, nil
}

// Validate reports every problem at once instead of stopping at the first.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Port) == "" {
		problems = append(problems, "PORT must not be empty")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			problems = append(problems, "MONGO_URI is required for the mongo driver")
		}
		if strings.TrimSpace(c.DBName) == "" {
			problems = append(problems, "DB_NAME is required for the mongo driver")
		}
		if strings.TrimSpace(c.JWTSecret) == "" {
			problems = append(problems, "JWT_SECRET is required for the mongo driver")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverMemory, c.StoreDriver))
	}
	if c.AccessTokenTTL <= 0 {
		problems = append(problems, "ACCESS_TOKEN_TTL must be positive")
	}
	if c.UploadMaxMB <= 0 {
		problems = append(problems, "UPLOAD_MAX_MB must be positive")
	}
	if strings.TrimSpace(c.PublicDir) == "" {
		problems = append(problems, "PUBLIC_DIR must not be empty")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// SigningSecret falls back to a fixed development secret for the memory driver.
func (c *Config) SigningSecret() string {
	if c.JWTSecret == "" && c.StoreDriver == DriverMemory {
		return "produck-dev-secret"
	}
	return c.JWTSecret
}

func (c *Config) UploadLimitBytes() int64 {
	return c.UploadMaxMB << 20
}
