package main

import (
	"context"
	"os/signal"
	"syscall"

	config_aws "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"social-scraper/internal/envutil"
	"social-scraper/internal/logging"
	"social-scraper/internal/queue"
	"social-scraper/workers/media/config"
	"social-scraper/workers/media/repositories"
	"social-scraper/workers/media/services"
)

func main() {
	logger := logging.NewLoggerWithService("media")
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

	sqsClient := queue.NewSQSClient(sqs.NewFromConfig(awsCfg))
	s3Repo := repositories.NewS3Repository(s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	}), cfg.MediaBucket)
	httpRepo := repositories.NewHTTPRepository(cfg.DownloadTimeout, cfg.MaxImageBytes)

	mediaService := services.NewMediaService(sqsClient, s3Repo, httpRepo, cfg.WriterQueueURL, logger)

	logger.WithField("bucket", cfg.MediaBucket).Info("Media worker started")
	queue.NewConsumer(sqsClient, cfg.InputQueueURL, mediaService.HandleBody, logger).Run(ctx)
	logger.Info("Media worker stopped")
}
