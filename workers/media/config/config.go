package config

import (
	"fmt"
	"time"

	"social-scraper/internal/envutil"
)

type Config struct {
	InputQueueURL   string
	WriterQueueURL  string
	MediaBucket     string
	DownloadTimeout time.Duration
	MaxImageBytes   int64
}

func Load() (*Config, error) {
	cfg := &Config{
		InputQueueURL:   envutil.GetEnv("INPUT_QUEUE_URL", ""),
		WriterQueueURL:  envutil.GetEnv("WRITER_QUEUE_URL", ""),
		MediaBucket:     envutil.GetEnv("MEDIA_BUCKET", "social-scraper-media"),
		DownloadTimeout: envutil.GetEnvDuration("DOWNLOAD_TIMEOUT", 10*time.Second),
		MaxImageBytes:   int64(envutil.GetEnvInt("MAX_IMAGE_BYTES", 10<<20)),
	}
	if cfg.InputQueueURL == "" || cfg.WriterQueueURL == "" {
		return nil, fmt.Errorf("INPUT_QUEUE_URL and WRITER_QUEUE_URL must be set")
	}
	return cfg, nil
}
