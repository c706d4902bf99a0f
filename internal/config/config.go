package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Server holds HTTP listener settings
type Server struct {
	Host string `yaml:"host" env:"SNAKESCORE_HOST" env-default:""`
	Port int    `yaml:"port" env:"SNAKESCORE_PORT" env-default:"8080"`
}

// Storage selects and configures the persistence backend
type Storage struct {
	// Type is one of "memory", "redis", "postgres"
	Type        string `yaml:"type" env:"STORAGE_TYPE" env-default:"memory"`
	RedisURL    string `yaml:"redis_url" env:"REDIS_URL" env-default:"redis://localhost:6379"`
	PostgresDSN string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
}

// Auth selects the credential verification scheme
type Auth struct {
	// Scheme is "plain" (historical default) or "bcrypt"
	Scheme string `yaml:"scheme" env:"AUTH_SCHEME" env-default:"plain"`
}

// Config is the full application configuration
type Config struct {
	Server   Server  `yaml:"server"`
	Storage  Storage `yaml:"storage"`
	Auth     Auth    `yaml:"auth"`
	LogLevel string  `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the yaml file named by CONFIG_PATH, with
// environment variables taking precedence. Without CONFIG_PATH the
// environment alone is used, so the server runs with no config file.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}
	return &cfg, nil
}
