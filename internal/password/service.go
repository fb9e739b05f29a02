package password

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"songpass/app/internal/clipboard"
	"songpass/app/internal/history"
	"songpass/app/internal/scrape"
)

// Scraper is the part of scrape.Scraper the service depends on.
type Scraper interface {
	FetchOverviewPages(ctx context.Context, count int) ([]string, error)
	FetchLyrics(ctx context.Context, songURL string) (string, bool, error)
}

// Service generates passwords from song lyrics.
type Service interface {
	Generate(ctx context.Context, pages int, suffix string) (*Result, error)
}

// Result describes one generated password.
type Result struct {
	RunID          string
	Password       string
	SongURL        string
	PagesCrawled   int
	CandidateCount int
	LyricLength    int
}

var (
	// ErrNoSongURLs indicates the overview pages yielded nothing to choose from.
	ErrNoSongURLs = eris.New("no song urls found")
	// ErrLyricsNotFound indicates the chosen song page has no lyrics container.
	ErrLyricsNotFound = eris.New("lyrics not found")
)

// Options wires the service with its collaborators. History and SentryHub are optional.
type Options struct {
	Scraper   Scraper
	Random    Random
	Clipboard clipboard.Writer
	History   history.Repository
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
}

type service struct {
	scraper   Scraper
	random    Random
	clipboard clipboard.Writer
	history   history.Repository
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ Service = (*service)(nil)

// NewService validates opts and constructs a Service.
func NewService(opts Options) (Service, error) {
	if opts.Scraper == nil {
		return nil, eris.New("scraper is required")
	}
	if opts.Random == nil {
		return nil, eris.New("random source is required")
	}
	if opts.Clipboard == nil {
		return nil, eris.New("clipboard writer is required")
	}

	return &service{
		scraper:   opts.Scraper,
		random:    opts.Random,
		clipboard: opts.Clipboard,
		history:   opts.History,
		logger:    opts.Logger,
		sentryHub: opts.SentryHub,
	}, nil
}

// Generate crawls pages overview pages, picks one song at random, builds the
// password from its lyrics and suffix, and copies it to the clipboard.
func (s *service) Generate(ctx context.Context, pages int, suffix string) (*Result, error) {
	runID := uuid.NewString()
	fields := logrus.Fields{"run_id": runID, "pages": pages}

	if pages < 0 {
		return nil, eris.Errorf("page count must not be negative, got %d", pages)
	}

	bodies, err := s.scraper.FetchOverviewPages(ctx, pages)
	if err != nil {
		s.recordError(fields, err, "fetching overview pages")
		return nil, eris.Wrap(err, "fetching overview pages")
	}

	songURLs, err := scrape.ExtractSongURLs(bodies)
	if err != nil {
		s.recordError(fields, err, "extracting song urls")
		return nil, eris.Wrap(err, "extracting song urls")
	}

	if len(songURLs) == 0 {
		wrapped := eris.Wrapf(ErrNoSongURLs, "selecting a song from %d overview pages", pages)
		s.recordError(fields, wrapped, "selecting random song")
		return nil, wrapped
	}

	index := s.random.Intn(len(songURLs))
	if index < 0 || index >= len(songURLs) {
		err := eris.Errorf("random index %d out of range for %d songs", index, len(songURLs))
		s.recordError(fields, err, "selecting random song")
		return nil, err
	}
	songURL := songURLs[index]
	fields["song_url"] = songURL
	fields["candidates"] = len(songURLs)

	lyrics, found, err := s.scraper.FetchLyrics(ctx, songURL)
	if err != nil {
		s.recordError(fields, err, "fetching lyrics")
		return nil, eris.Wrap(err, "fetching lyrics")
	}

	if !found {
		wrapped := eris.Wrapf(ErrLyricsNotFound, "no lyrics container on %s", songURL)
		s.recordError(fields, wrapped, "extracting lyrics")
		return nil, wrapped
	}

	if lyrics == "" && s.logger != nil {
		s.logger.WithFields(fields).Warn("lyrics container is empty, password is the suffix alone")
	}

	result := &Result{
		RunID:          runID,
		Password:       Assemble(lyrics, suffix),
		SongURL:        songURL,
		PagesCrawled:   pages,
		CandidateCount: len(songURLs),
		LyricLength:    len(lyrics),
	}

	if err := s.clipboard.Copy(result.Password); err != nil {
		s.recordError(fields, err, "copying password to clipboard")
		return nil, eris.Wrap(err, "copying password to clipboard")
	}

	s.saveHistory(ctx, result, len(suffix))

	if s.logger != nil {
		s.logger.WithFields(fields).WithField("length", len(result.Password)).Info("password copied to clipboard")
	}

	return result, nil
}

func (s *service) saveHistory(ctx context.Context, result *Result, suffixLength int) {
	if s.history == nil {
		return
	}

	record := &history.Record{
		RunID:          result.RunID,
		SongURL:        result.SongURL,
		PagesCrawled:   result.PagesCrawled,
		CandidateCount: result.CandidateCount,
		LyricLength:    result.LyricLength,
		SuffixLength:   suffixLength,
	}

	if err := s.history.Save(ctx, record); err != nil && s.logger != nil {
		s.logger.WithField("error", err.Error()).WithField("run_id", result.RunID).Warn("saving generation history")
	}
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}
