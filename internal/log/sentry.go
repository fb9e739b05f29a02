package log

import (
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const (
	sentryFlushTimeout = 2 * time.Second
	appName            = "songpass"
)

// SentrySettings represents the configuration required to bootstrap Sentry.
type SentrySettings struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry builds a Sentry hub for one CLI run and forwards error-level
// logrus entries to it. Without a DSN it returns a nil hub and a no-op flush.
func InitSentry(logger *logrus.Logger, settings SentrySettings) (*sentry.Hub, func(), error) {
	if settings.DSN == "" {
		return nil, func() {}, nil
	}

	release := settings.Release
	if release == "" {
		release = buildRelease()
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         settings.DSN,
		Environment: settings.Environment,
		Release:     release,
	})
	if err != nil {
		return nil, nil, eris.Wrap(err, "error initializing sentry client")
	}

	scope := sentry.NewScope()
	scope.SetTag("app", appName)
	scope.SetTag("mode", "cli")
	hub := sentry.NewHub(client, scope)

	if logger != nil {
		logger.AddHook(sentrylogrus.NewLogHookFromClient([]logrus.Level{
			logrus.ErrorLevel,
			logrus.FatalLevel,
			logrus.PanicLevel,
		}, client))
	}

	flush := func() {
		hub.Flush(sentryFlushTimeout)
	}

	return hub, flush, nil
}

func buildRelease() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return appName + "@devel"
	}
	return appName + "@" + info.Main.Version
}
