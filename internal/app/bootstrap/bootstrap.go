package bootstrap

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"songpass/app/internal/clipboard"
	"songpass/app/internal/config"
	"songpass/app/internal/history"
	"songpass/app/internal/password"
	"songpass/app/internal/scrape"
)

// Dependencies carries the process-wide collaborators. Clipboard and Random
// default to the system clipboard and a time-seeded source when nil.
type Dependencies struct {
	Config    config.Config
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
	Clipboard clipboard.Writer
	Random    password.Random
}

// Result holds the composed components.
type Result struct {
	PasswordService password.Service
	History         history.Repository
	Cleanup         func() error
}

// Build composes the songpass layers and returns the constructed components.
func Build(ctx context.Context, deps Dependencies) (Result, error) {
	cleanup := func() error { return nil }

	var repo history.Repository
	if deps.Config.HistoryDB != "" {
		db, err := history.OpenStore(history.StoreOptions{Path: deps.Config.HistoryDB})
		if err != nil {
			return Result{}, eris.Wrap(err, "opening history database")
		}

		closeOnError := func(wrapper error) (Result, error) {
			if closeErr := history.CloseStore(db); closeErr != nil && deps.Logger != nil {
				deps.Logger.WithError(closeErr).Error("closing history database after bootstrap failure")
			}
			return Result{}, wrapper
		}

		if err := history.Migrate(ctx, db, deps.Logger); err != nil {
			return closeOnError(eris.Wrap(err, "running history migrations"))
		}

		gormRepo, err := history.NewRepository(db, deps.Logger)
		if err != nil {
			return closeOnError(eris.Wrap(err, "creating history repository"))
		}

		repo = gormRepo
		cleanup = func() error {
			return history.CloseStore(db)
		}
	}

	fail := func(wrapper error) (Result, error) {
		if closeErr := cleanup(); closeErr != nil && deps.Logger != nil {
			deps.Logger.WithError(closeErr).Error("closing history database after bootstrap failure")
		}
		return Result{}, wrapper
	}

	fetcher := scrape.NewHTTPFetcher(scrape.FetcherOptions{
		Timeout:   deps.Config.HTTPTimeout,
		UserAgent: deps.Config.UserAgent,
		Logger:    deps.Logger,
	})

	scraper, err := scrape.New(scrape.Options{
		Fetcher: fetcher,
		BaseURL: deps.Config.BaseURL,
		Logger:  deps.Logger,
	})
	if err != nil {
		return fail(eris.Wrap(err, "creating scraper"))
	}

	writer := deps.Clipboard
	if writer == nil {
		writer = clipboard.System{}
	}

	random := deps.Random
	if random == nil {
		random = password.NewRandom(0)
	}

	service, err := password.NewService(password.Options{
		Scraper:   scraper,
		Random:    random,
		Clipboard: writer,
		History:   repo,
		Logger:    deps.Logger,
		SentryHub: deps.SentryHub,
	})
	if err != nil {
		return fail(eris.Wrap(err, "creating password service"))
	}

	return Result{
		PasswordService: service,
		History:         repo,
		Cleanup:         cleanup,
	}, nil
}
