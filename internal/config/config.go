package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIPort    int    `yaml:"apiPort"`
	Env        string `yaml:"env"`
	CORSOrigin string `yaml:"corsOrigin"`
	JWT        struct {
		Secret        string        `yaml:"secret"`
		TokenDuration time.Duration `yaml:"tokenDuration"`
	} `yaml:"jwt"`
	Database struct {
		Type            string `yaml:"type"`
		Path            string `yaml:"path"`
		Host            string `yaml:"host"`
		Port            string `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		SSLMode         string `yaml:"sslMode"`
		MaxConns        int    `yaml:"maxConns"`
		MaxIdle         int    `yaml:"maxIdle"`
		ConnMaxLifetime string `yaml:"connMaxLifetime"`
	} `yaml:"database"`
}

// IsDevelopment reports whether the server runs in development mode.
// Error responses carry underlying details only in development.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The config file is required; a missing or unreadable file fails
	// startup rather than silently running on defaults.
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIPort == 0 {
		cfg.APIPort = 8080
		log.Println("APIPort not specified, using default 8080")
	}

	if cfg.Env == "" {
		cfg.Env = "development"
		log.Println("Env not specified, defaulting to development")
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = v.GetString("JWT_SECRET")
	}

	if cfg.JWT.TokenDuration == 0 {
		cfg.JWT.TokenDuration = 24 * time.Hour
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
		log.Println("Database type not specified, using sqlite")
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "/data/fleetdesk.db"
	}

	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.Database.MaxIdle == 0 {
		cfg.Database.MaxIdle = 5
	}
	if cfg.Database.ConnMaxLifetime == "" {
		cfg.Database.ConnMaxLifetime = "1h"
	}

	return &cfg, nil
}
