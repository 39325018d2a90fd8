package main

import (
	"context"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/Tleuberdina/bot-project/internal/app"
	"github.com/Tleuberdina/bot-project/internal/config"
	"github.com/Tleuberdina/bot-project/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code. Deferred flushes complete before main
// exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		return 2
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		return 2
	}
	defer func() { _ = log.Sync() }()

	// An empty DSN leaves the client disabled.
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.AppEnv,
	}); err != nil {
		log.Error("sentry init failed", zap.Error(err))
		return 1
	}
	defer sentry.Flush(2 * time.Second)

	application, err := app.New(cfg, log)
	if err != nil {
		sentry.CaptureException(err)
		log.Error("app init failed", zap.Error(err))
		return 1
	}

	if err := application.Run(context.Background()); err != nil {
		sentry.CaptureException(err)
		log.Error("app run failed", zap.Error(err))
		return 1
	}
	return 0
}
