package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"social-scraper/internal/envutil"
	"social-scraper/internal/logging"
)

func main() {
	logger := logging.NewLoggerWithService("scraper")
	envutil.LoadEnv(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.WithError(err).Error("scraper failed")
		stop()
		os.Exit(1)
	}
}
