package config

import (
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/flagx"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabasePath = "focusgroup.db"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "warn"
}

func parseEnv(cfg *Config) {
	// A missing .env is normal.
	_ = godotenv.Load()

	flagx.EnvString("FOCUSGROUP_SERVER_URL", &cfg.ServerURL)
	flagx.EnvString("FOCUSGROUP_DB_PATH", &cfg.DatabasePath)
	flagx.EnvDuration("FOCUSGROUP_REQUEST_TIMEOUT", &cfg.RequestTimeout)
	flagx.EnvString("FOCUSGROUP_LOG_LEVEL", &cfg.LogLevel)
}

// LoadConfig applies defaults, environment, JSON and flags in that order.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
