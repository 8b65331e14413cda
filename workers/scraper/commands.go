package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	config_aws "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"social-scraper/internal/logging"
	"social-scraper/internal/queue"
	"social-scraper/workers/scraper/config"
	"social-scraper/workers/scraper/domain"
	"social-scraper/workers/scraper/repositories"
	"social-scraper/workers/scraper/services"
)

const (
	cmdPosts         = "posts"
	cmdFacebookPosts = "facebook-posts"
	cmdFacebookPages = "facebook-pages"
	cmdAll           = "all"
)

func newRootCmd(logger logging.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "scraper",
		Short:         "Collect keyword-relevant social media posts and Facebook page data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var group string
	var platforms []string
	posts := &cobra.Command{
		Use:   cmdPosts,
		Short: "Scrape Instagram, TikTok and Twitter for the keyword list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), logger, cmdPosts, group, platforms)
		},
	}
	posts.Flags().StringVar(&group, "group", domain.GroupMain, "keyword group: main|control")
	posts.Flags().StringSliceVar(&platforms, "platforms", nil, "subset of instagram,tiktok,twitter (default all)")

	root.AddCommand(posts)
	root.AddCommand(&cobra.Command{
		Use:   cmdFacebookPosts,
		Short: "Scrape posts from the configured Facebook pages and keep keyword matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), logger, cmdFacebookPosts, domain.GroupMain, nil)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   cmdFacebookPages,
		Short: "Collect metadata of the configured Facebook pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), logger, cmdFacebookPages, domain.GroupMain, nil)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   cmdAll,
		Short: "Run every scraper for the main keyword group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), logger, cmdAll, domain.GroupMain, nil)
		},
	})
	return root
}

func run(ctx context.Context, logger logging.Logger, command, group string, platforms []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	keywords, err := config.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return err
	}
	pages, err := config.LoadPages(cfg.PagesFile)
	if err != nil {
		return err
	}

	plans, err := buildPlans(command, group, platforms, cfg, keywords, pages)
	if err != nil {
		return err
	}

	svc, shutdown, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer shutdown()

	logger.WithFields(logging.Fields{
		"command":      command,
		"group":        group,
		"keywords":     len(keywords.Main),
		"pages":        len(pages),
		"cutoff_year":  cfg.CutoffYear,
		"max_per_unit": cfg.MaxResultsPerKeyword,
	}).Info("starting scraper")

	report, err := svc.Run(ctx, command, plans)
	if err != nil {
		return err
	}
	for _, res := range report.Results {
		logger.WithFields(logging.Fields{
			"run_id":   report.RunID,
			"platform": res.Platform,
			"records":  res.Table.Len(),
			"file":     res.File,
		}).Info("result")
	}
	return nil
}

func planConfig(cfg *config.Config, group string) services.PlanConfig {
	pc := services.PlanConfig{
		MaxResultsPerKeyword: cfg.MaxResultsPerKeyword,
		MaxPostsPerPage:      cfg.MaxPostsPerPage,
		KeywordLimit:         cfg.KeywordLimit,
		CutoffYear:           cfg.CutoffYear,
		KeywordFilterSearch:  cfg.KeywordFilterSearch,
		PostsBatchSize:       cfg.PostsBatchSize,
		PagesBatchSize:       cfg.PagesBatchSize,
		UnitPause:            cfg.UnitPause,
		BatchPause:           cfg.BatchPause,
	}
	if group == domain.GroupControl {
		pc.FileSuffix = "_" + domain.GroupControl
	}
	return pc
}

func buildPlans(command, group string, platforms []string, cfg *config.Config, keywords config.KeywordsFile, pages []domain.Page) ([]services.Plan, error) {
	var groupKeywords []domain.Keyword
	switch group {
	case domain.GroupMain:
		groupKeywords = keywords.Main
	case domain.GroupControl:
		groupKeywords = keywords.Control
	default:
		return nil, fmt.Errorf("unknown keyword group %q", group)
	}
	kwSet := domain.NewKeywordSet(groupKeywords)
	mainSet := domain.NewKeywordSet(keywords.Main)
	pc := planConfig(cfg, group)

	search := services.SearchPlatforms
	if len(platforms) > 0 {
		search = nil
		for _, name := range platforms {
			p, ok := domain.ParsePlatform(strings.TrimSpace(name))
			if !ok || !isSearchPlatform(p) {
				return nil, fmt.Errorf("unknown search platform %q", name)
			}
			search = append(search, p)
		}
	}

	var plans []services.Plan
	addSearch := func() error {
		for _, p := range search {
			plan, err := services.SearchPlan(p, kwSet, pc)
			if err != nil {
				return err
			}
			plans = append(plans, plan)
		}
		return nil
	}
	addPosts := func() error {
		plan, err := services.FacebookPostsPlan(pages, mainSet, pc)
		if err != nil {
			return err
		}
		plans = append(plans, plan)
		return nil
	}
	addPages := func() error {
		plan, err := services.FacebookPagesPlan(pages, pc)
		if err != nil {
			return err
		}
		plans = append(plans, plan)
		return nil
	}

	var steps []func() error
	switch command {
	case cmdPosts:
		steps = []func() error{addSearch}
	case cmdFacebookPosts:
		steps = []func() error{addPosts}
	case cmdFacebookPages:
		steps = []func() error{addPages}
	case cmdAll:
		steps = []func() error{addSearch, addPosts, addPages}
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func isSearchPlatform(p domain.Platform) bool {
	for _, sp := range services.SearchPlatforms {
		if sp == p {
			return true
		}
	}
	return false
}

// buildService wires the actor client, exporter and every configured sink.
func buildService(ctx context.Context, cfg *config.Config, logger logging.Logger) (*services.ScraperService, func(), error) {
	retry := repositories.DefaultRetryConfig()
	retry.MaxRetries = cfg.MaxRetries
	actor := repositories.NewApifyClient(cfg.APIBaseURL, cfg.APIToken,
		repositories.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		repositories.WithRetryConfig(retry),
		repositories.WithWaitForFinish(cfg.WaitForFinish),
	)

	reg := prometheus.NewRegistry()
	opts := []services.ScraperOption{
		services.WithActorRunner(actor),
		services.WithExporter(repositories.NewCSVExporter(cfg.OutputDir)),
		services.WithLogger(logger),
		services.WithResultsLimit(cfg.ResultsLimit),
		services.WithConcurrency(cfg.Concurrency),
		services.WithMetrics(services.NewMetrics(reg)),
	}

	if cfg.AWSEnabled() {
		awsCfg, err := config_aws.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to load SDK config: %w", err)
		}
		if cfg.ExportBucket != "" {
			s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
				o.UsePathStyle = true
			})
			opts = append(opts, services.WithUploader(repositories.NewS3Uploader(s3Client, cfg.ExportBucket)))
		}
		if cfg.WriterQueueURL != "" || cfg.IndexerQueueURL != "" || cfg.MediaQueueURL != "" {
			publisher := queue.NewSQSClient(sqs.NewFromConfig(awsCfg))
			opts = append(opts, services.WithPublisher(publisher, cfg.WriterQueueURL, cfg.IndexerQueueURL, cfg.MediaQueueURL))
		}
		if cfg.RunsTable != "" {
			opts = append(opts, services.WithRunStatusStore(repositories.NewRunStatusStore(dynamodb.NewFromConfig(awsCfg), cfg.RunsTable)))
		}
	}
	if cfg.RedisHost != "" {
		opts = append(opts, services.WithRunTracker(repositories.NewRunTracker(cfg.RedisHost, cfg.RedisPort)))
	}

	shutdown := func() {}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
		shutdown = func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}
	}

	return services.NewScraperService(opts...), shutdown, nil
}
