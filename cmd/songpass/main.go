package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"songpass/app/internal/app/bootstrap"
	"songpass/app/internal/config"
	"songpass/app/internal/history"
	applog "songpass/app/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, argv []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failure loading configuration")
	}

	args, err := config.ParseArgs(argv)
	if err != nil {
		return eris.Wrap(err, "failure parsing arguments")
	}

	logger, err := applog.NewLogger(cfg.LogLevel)
	if err != nil {
		return eris.Wrap(err, "failure initialising logger")
	}

	sentryHub, flush, err := applog.InitSentry(logger, applog.SentrySettings{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	if err != nil {
		return eris.Wrap(err, "failure initialising sentry")
	}
	defer flush()

	app, err := bootstrap.Build(ctx, bootstrap.Dependencies{
		Config:    *cfg,
		Logger:    logger,
		SentryHub: sentryHub,
	})
	if err != nil {
		return eris.Wrap(err, "building application")
	}
	defer func() {
		if closeErr := app.Cleanup(); closeErr != nil {
			logger.WithError(closeErr).Error("closing history database")
		}
	}()

	if cfg.HistoryList > 0 {
		return listHistory(ctx, app.History, cfg.HistoryList, os.Stdout)
	}

	logger.WithFields(logrus.Fields{
		"pages":    args.Pages,
		"base_url": cfg.BaseURL,
	}).Debug("generating password")

	if _, err := app.PasswordService.Generate(ctx, args.Pages, args.Suffix); err != nil {
		return eris.Wrap(err, "generating password")
	}

	return nil
}

// listHistory prints the latest generation records instead of generating.
func listHistory(ctx context.Context, repo history.Repository, limit int, out io.Writer) error {
	if repo == nil {
		return eris.New("SONGPASS_HISTORY_LIST requires SONGPASS_HISTORY_DB to be set")
	}

	if err := history.WriteReport(ctx, repo, limit, out); err != nil {
		return eris.Wrap(err, "listing history")
	}
	return nil
}
