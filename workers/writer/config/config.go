package config

import (
	"fmt"

	"social-scraper/internal/envutil"
)

type Config struct {
	InputQueueURL string
	DatabaseURL   string
	AutoMigrate   bool
}

func Load() (*Config, error) {
	cfg := &Config{
		InputQueueURL: envutil.GetEnv("INPUT_QUEUE_URL", ""),
		DatabaseURL:   envutil.GetEnv("DATABASE_URL", ""),
		AutoMigrate:   envutil.GetEnvBool("DB_AUTO_MIGRATE", true),
	}

	if cfg.InputQueueURL == "" {
		return nil, fmt.Errorf("INPUT_QUEUE_URL is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}
