package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	APIBaseURL         string        `env:"API_BASE_URL,required"`
	APIKey             string        `env:"API_KEY"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`

	RedisAddr     string        `env:"REDIS_ADDR,required"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CartKey       string        `env:"CART_STORAGE_KEY" envDefault:"framex:cart:v1"`

	UploadFolder string `env:"UPLOAD_FOLDER" envDefault:"cart-uploads"`

	DBHost            string        `env:"DB_HOST"`
	DBPort            int           `env:"DB_PORT" envDefault:"5432"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBName            string        `env:"DB_NAME"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// The order archive is optional, but a half-configured one is a
	// deployment mistake.
	if cfg.DBHost != "" && (cfg.DBUser == "" || cfg.DBName == "") {
		return nil, fmt.Errorf("DB_HOST is set but DB_USER/DB_NAME are missing")
	}

	return &cfg, nil
}

// ArchiveEnabled reports whether the local order archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DBHost != ""
}
