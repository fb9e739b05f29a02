package scrape

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// Fetcher retrieves the body of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

var (
	// ErrUnexpectedStatus indicates the remote site answered with a non-2xx status.
	ErrUnexpectedStatus = eris.New("unexpected http status")
	// ErrBodyTooLarge indicates the response body exceeded the configured limit.
	ErrBodyTooLarge = eris.New("response body too large")
)

const (
	defaultFetchTimeout = 30 * time.Second
	defaultUserAgent    = "songpass/1.0"
	defaultMaxBodyBytes = 8 << 20
)

// FetcherOptions controls how the HTTP fetcher is initialised. MaxBodyBytes
// caps the raw body size and defaults to 8 MiB.
type FetcherOptions struct {
	HTTPClient   *http.Client
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	Logger       *logrus.Logger
}

// HTTPFetcher performs plain GET requests and decodes the body to UTF-8.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	logger       *logrus.Logger
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher constructs an HTTPFetcher, applying defaults for unset options.
func NewHTTPFetcher(opts FetcherOptions) *HTTPFetcher {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultFetchTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	maxBodyBytes := opts.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	return &HTTPFetcher{client: client, userAgent: userAgent, maxBodyBytes: maxBodyBytes, logger: opts.Logger}
}

// Fetch issues a single GET request. Failures are not retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrapf(err, "building request for %s", url)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.logError(logrus.Fields{"url": url}, err, "fetching page")
		return "", eris.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := eris.Wrapf(ErrUnexpectedStatus, "GET %s returned %d", url, resp.StatusCode)
		f.logError(logrus.Fields{"url": url, "status": resp.StatusCode}, err, "fetching page")
		return "", err
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		f.logError(logrus.Fields{"url": url}, err, "reading response body")
		return "", eris.Wrapf(err, "reading body of %s", url)
	}

	if int64(len(raw)) > f.maxBodyBytes {
		err := eris.Wrapf(ErrBodyTooLarge, "GET %s exceeded %d bytes", url, f.maxBodyBytes)
		f.logError(logrus.Fields{"url": url, "limit": f.maxBodyBytes}, err, "reading response body")
		return "", err
	}

	reader, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", eris.Wrapf(err, "detecting charset for %s", url)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", eris.Wrapf(err, "decoding body of %s", url)
	}

	if f.logger != nil {
		f.logger.WithFields(logrus.Fields{
			"url":         url,
			"status":      resp.StatusCode,
			"bytes":       len(body),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("fetched page")
	}

	return string(body), nil
}

func (f *HTTPFetcher) logError(fields logrus.Fields, err error, message string) {
	if f.logger == nil || err == nil {
		return
	}

	entry := f.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
