package config

import (
	"fmt"
	"time"

	"social-scraper/internal/envutil"
	"social-scraper/workers/scraper/domain"
)

const DefaultAPIBaseURL = "https://api.apify.com"

type Config struct {
	APIToken   string
	APIBaseURL string

	MaxResultsPerKeyword int
	ResultsLimit         int
	MaxPostsPerPage      int
	KeywordLimit         int
	CutoffYear           int
	KeywordFilterSearch  bool

	PostsBatchSize int
	PagesBatchSize int
	UnitPause      time.Duration
	BatchPause     time.Duration
	Concurrency    int

	HTTPTimeout   time.Duration
	MaxRetries    int
	WaitForFinish int

	OutputDir    string
	KeywordsFile string
	PagesFile    string
	MetricsAddr  string

	ExportBucket    string
	WriterQueueURL  string
	IndexerQueueURL string
	MediaQueueURL   string
	RunsTable       string
	RedisHost       string
	RedisPort       string
}

func Load() (*Config, error) {
	cfg := &Config{
		APIToken:   envutil.GetEnv("APIFY_API_TOKEN", ""),
		APIBaseURL: envutil.GetEnv("APIFY_BASE_URL", DefaultAPIBaseURL),

		MaxResultsPerKeyword: envutil.GetEnvInt("MAX_RESULTS_PER_KEYWORD", 100),
		ResultsLimit:         envutil.GetEnvInt("RESULTS_LIMIT", 1000),
		MaxPostsPerPage:      envutil.GetEnvInt("MAX_POSTS_PER_PAGE", 100),
		KeywordLimit:         envutil.GetEnvInt("KEYWORD_LIMIT", 10),
		CutoffYear:           envutil.GetEnvInt("CUTOFF_YEAR", domain.DefaultCutoffYear),
		KeywordFilterSearch:  envutil.GetEnvBool("KEYWORD_FILTER_SEARCH", false),

		PostsBatchSize: envutil.GetEnvInt("POSTS_BATCH_SIZE", 5),
		PagesBatchSize: envutil.GetEnvInt("PAGES_BATCH_SIZE", 10),
		UnitPause:      envutil.GetEnvDuration("UNIT_PAUSE", 2*time.Second),
		BatchPause:     envutil.GetEnvDuration("BATCH_PAUSE", 5*time.Second),
		Concurrency:    envutil.GetEnvInt("CONCURRENCY", 1),

		HTTPTimeout:   envutil.GetEnvDuration("HTTP_TIMEOUT", 90*time.Second),
		MaxRetries:    envutil.GetEnvInt("MAX_RETRIES", 3),
		WaitForFinish: envutil.GetEnvInt("WAIT_FOR_FINISH", 60),

		OutputDir:    envutil.GetEnv("OUTPUT_DIR", "output"),
		KeywordsFile: envutil.GetEnv("KEYWORDS_FILE", ""),
		PagesFile:    envutil.GetEnv("PAGES_FILE", ""),
		MetricsAddr:  envutil.GetEnv("METRICS_ADDR", ""),

		ExportBucket:    envutil.GetEnv("EXPORT_BUCKET", ""),
		WriterQueueURL:  envutil.GetEnv("WRITER_QUEUE_URL", ""),
		IndexerQueueURL: envutil.GetEnv("INDEXER_QUEUE_URL", ""),
		MediaQueueURL:   envutil.GetEnv("MEDIA_QUEUE_URL", ""),
		RunsTable:       envutil.GetEnv("RUNS_TABLE", ""),
		RedisHost:       envutil.GetEnv("REDIS_HOST", ""),
		RedisPort:       envutil.GetEnv("REDIS_PORT", "6379"),
	}

	if cfg.APIToken == "" {
		return nil, fmt.Errorf("APIFY_API_TOKEN is required")
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.PostsBatchSize < 1 {
		cfg.PostsBatchSize = 1
	}
	if cfg.PagesBatchSize < 1 {
		cfg.PagesBatchSize = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return cfg, nil
}

// AWSEnabled reports whether any AWS-backed sink is configured.
func (c *Config) AWSEnabled() bool {
	return c.ExportBucket != "" || c.WriterQueueURL != "" || c.IndexerQueueURL != "" ||
		c.MediaQueueURL != "" || c.RunsTable != ""
}
