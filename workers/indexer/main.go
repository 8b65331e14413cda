package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os/signal"
	"syscall"

	config_aws "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/opensearch-project/opensearch-go/v2"

	"social-scraper/internal/envutil"
	"social-scraper/internal/logging"
	"social-scraper/internal/queue"
	"social-scraper/workers/indexer/config"
	"social-scraper/workers/indexer/repositories"
	"social-scraper/workers/indexer/services"
)

func main() {
	logger := logging.NewLoggerWithService("indexer")
	envutil.LoadEnv(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := config_aws.LoadDefaultConfig(ctx)
	if err != nil {
		logger.WithError(err).Fatal("unable to load SDK config")
	}

	osClient, err := opensearch.NewClient(opensearch.Config{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
		},
		Addresses: []string{cfg.OpenSearchURL},
	})
	if err != nil {
		logger.WithError(err).Fatal("error creating OpenSearch client")
	}

	osRepo := repositories.NewOpenSearchRepository(osClient, cfg.Index)
	indexerService := services.NewIndexerService(osRepo, logger)

	logger.WithField("index", cfg.Index).Info("Indexer worker started")
	queue.NewConsumer(queue.NewSQSClient(sqs.NewFromConfig(awsCfg)), cfg.InputQueueURL, indexerService.HandleBody, logger).Run(ctx)
	logger.Info("Indexer worker stopped")
}
