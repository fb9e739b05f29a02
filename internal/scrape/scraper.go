package scrape

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const (
	// PageParam is the query parameter carrying the 1-based overview page index.
	PageParam = "seite"

	infoTag    = "div"
	infoClass  = "info"
	lyricTag   = "p"
	lyricClass = "lyrics"
)

// Options configures a Scraper.
type Options struct {
	Fetcher Fetcher
	BaseURL string
	Logger  *logrus.Logger
}

// Scraper walks the overview listing and song pages of the lyrics site.
type Scraper struct {
	fetcher Fetcher
	baseURL *url.URL
	logger  *logrus.Logger
}

// New constructs a Scraper.
func New(opts Options) (*Scraper, error) {
	if opts.Fetcher == nil {
		return nil, eris.New("fetcher is required")
	}

	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, eris.New("base url is required")
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "parsing base url: %s", raw)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, eris.Errorf("base url must be absolute: %s", raw)
	}

	return &Scraper{fetcher: opts.Fetcher, baseURL: base, logger: opts.Logger}, nil
}

// OverviewURL returns the listing URL for the given 1-based page.
func (s *Scraper) OverviewURL(page int) string {
	u := *s.baseURL
	query := u.Query()
	query.Set(PageParam, strconv.Itoa(page))
	u.RawQuery = query.Encode()
	return u.String()
}

// FetchOverviewPages downloads count listing pages in order. A count of zero
// returns an empty slice; the first failed request aborts the walk.
func (s *Scraper) FetchOverviewPages(ctx context.Context, count int) ([]string, error) {
	if count < 0 {
		return nil, eris.Errorf("page count must not be negative, got %d", count)
	}

	pages := make([]string, 0, count)
	for page := 1; page <= count; page++ {
		pageURL := s.OverviewURL(page)

		body, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, eris.Wrapf(err, "fetching overview page %d", page)
		}

		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"page": page, "url": pageURL}).Debug("fetched overview page")
		}
		pages = append(pages, body)
	}

	return pages, nil
}

// ExtractSongURLs collects the link target of every info container across
// pages, keeping page order then document order. Containers without an
// href attribute are skipped; empty targets and duplicates are kept.
func ExtractSongURLs(pages []string) ([]string, error) {
	var urls []string

	for idx, body := range pages {
		doc, err := ParseDocument(body)
		if err != nil {
			return nil, eris.Wrapf(err, "parsing overview page %d", idx+1)
		}

		for _, info := range doc.FindAll(infoTag, infoClass) {
			anchor, ok := info.First("a")
			if !ok {
				continue
			}

			href, ok := anchor.Attr("href")
			if !ok {
				continue
			}
			urls = append(urls, href)
		}
	}

	return urls, nil
}

// ExtractLyrics returns the cleaned text of the first lyrics container in
// body. The boolean is false when the page has no such container.
func ExtractLyrics(body string) (string, bool, error) {
	doc, err := ParseDocument(body)
	if err != nil {
		return "", false, err
	}

	container, ok := doc.FindFirst(lyricTag, lyricClass)
	if !ok {
		return "", false, nil
	}

	raw, err := container.InnerHTML()
	if err != nil {
		return "", false, eris.Wrap(err, "serializing lyrics container")
	}

	return CleanLyrics(raw), true, nil
}

// FetchLyrics downloads songURL as published and extracts its lyrics.
func (s *Scraper) FetchLyrics(ctx context.Context, songURL string) (string, bool, error) {
	body, err := s.fetcher.Fetch(ctx, songURL)
	if err != nil {
		return "", false, eris.Wrapf(err, "fetching song page %s", songURL)
	}

	text, found, err := ExtractLyrics(body)
	if err != nil {
		return "", false, eris.Wrapf(err, "extracting lyrics from %s", songURL)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"url":    songURL,
			"found":  found,
			"length": len(text),
		}).Debug("extracted lyrics")
	}

	return text, found, nil
}
