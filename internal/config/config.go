package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the songpass command.
type Config struct {
	LogLevel    string
	SentryDSN   string
	Environment string
	BaseURL     string
	UserAgent   string
	HTTPTimeout time.Duration
	HistoryDB   string
	HistoryList int
}

// Args holds the positional command line arguments.
type Args struct {
	Pages  int
	Suffix string
}

const (
	defaultLogLevel    = "warn"
	defaultEnvironment = "development"
	defaultBaseURL     = "https://www.songtexte.de/songtexte.html"
	defaultUserAgent   = "songpass/1.0"
	defaultHTTPTimeout = 30 * time.Second

	DefaultPages  = 3
	DefaultSuffix = "no_extra_text"
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		Environment: getEnv("ENV", defaultEnvironment),
		BaseURL:     getEnv("SONGPASS_BASE_URL", defaultBaseURL),
		UserAgent:   getEnv("SONGPASS_USER_AGENT", defaultUserAgent),
		HTTPTimeout: defaultHTTPTimeout,
		HistoryDB:   strings.TrimSpace(os.Getenv("SONGPASS_HISTORY_DB")),
	}

	if raw := strings.TrimSpace(os.Getenv("SONGPASS_HTTP_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid SONGPASS_HTTP_TIMEOUT value: %s", raw)
		}
		if timeout <= 0 {
			return nil, eris.Errorf("invalid SONGPASS_HTTP_TIMEOUT value: %s must be positive", raw)
		}
		cfg.HTTPTimeout = timeout
	}

	if raw := strings.TrimSpace(os.Getenv("SONGPASS_HISTORY_LIST")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid SONGPASS_HISTORY_LIST value: %s", raw)
		}
		if limit < 0 {
			return nil, eris.Errorf("invalid SONGPASS_HISTORY_LIST value: %d is negative", limit)
		}
		cfg.HistoryList = limit
	}

	return cfg, nil
}

// ParseArgs reads `[num_of_pages] [extra_text]` from args, which excludes the program name.
func ParseArgs(args []string) (Args, error) {
	parsed := Args{Pages: DefaultPages, Suffix: DefaultSuffix}

	if len(args) > 0 {
		pages, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return Args{}, eris.Wrapf(err, "invalid num_of_pages value: %s", args[0])
		}
		if pages < 0 {
			return Args{}, eris.Errorf("invalid num_of_pages value: %d is negative", pages)
		}
		parsed.Pages = pages
	}

	if len(args) > 1 {
		parsed.Suffix = args[1]
	}

	return parsed, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
