package config

import (
	"fmt"

	"social-scraper/internal/envutil"
)

type Config struct {
	InputQueueURL      string
	OpenSearchURL      string
	Index              string
	InsecureSkipVerify bool
}

func Load() (*Config, error) {
	cfg := &Config{
		InputQueueURL:      envutil.GetEnv("INPUT_QUEUE_URL", ""),
		OpenSearchURL:      envutil.GetEnv("OPENSEARCH_URL", "http://localhost:9200"),
		Index:              envutil.GetEnv("OPENSEARCH_INDEX", "social_posts"),
		InsecureSkipVerify: envutil.GetEnvBool("OPENSEARCH_INSECURE", false),
	}
	if cfg.InputQueueURL == "" {
		return nil, fmt.Errorf("INPUT_QUEUE_URL is required")
	}
	return cfg, nil
}
