package main

import (
	"context"
	"os/signal"
	"syscall"

	config_aws "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"social-scraper/internal/envutil"
	"social-scraper/internal/logging"
	"social-scraper/internal/queue"
	"social-scraper/workers/writer/config"
	"social-scraper/workers/writer/repositories"
	"social-scraper/workers/writer/services"
)

func main() {
	logger := logging.NewLoggerWithService("writer")
	envutil.LoadEnv(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	// Connect DB using GORM
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to db")
	}
	dbRepo := repositories.NewDBRepository(db)
	if cfg.AutoMigrate {
		if err := dbRepo.Migrate(); err != nil {
			logger.WithError(err).Fatal("failed to migrate db")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := config_aws.LoadDefaultConfig(ctx)
	if err != nil {
		logger.WithError(err).Fatal("unable to load SDK config")
	}
	sqsClient := queue.NewSQSClient(sqs.NewFromConfig(awsCfg))

	writerService := services.NewWriterService(
		services.WithDBRepository(dbRepo),
		services.WithLogger(logger),
	)

	logger.Info("Writer worker started")
	queue.NewConsumer(sqsClient, cfg.InputQueueURL, writerService.HandleBody, logger).Run(ctx)
	logger.Info("Writer worker stopped")
}
