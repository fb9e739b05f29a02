package scrape

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
)

type fakeFetcher struct {
	pages map[string]string
	err   map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.err[url]; ok {
		return "", err
	}
	body, ok := f.pages[url]
	if !ok {
		return "", eris.Errorf("no page for %s", url)
	}
	return body, nil
}

const testBaseURL = "https://lyrics.example/songtexte.html"

func newTestScraper(t *testing.T, fetcher Fetcher) *Scraper {
	t.Helper()

	scraper, err := New(Options{Fetcher: fetcher, BaseURL: testBaseURL})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return scraper
}

func TestNewValidatesOptions(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{BaseURL: testBaseURL}); err == nil {
		t.Fatalf("expected error when fetcher is missing")
	}
	if _, err := New(Options{Fetcher: &fakeFetcher{}}); err == nil {
		t.Fatalf("expected error when base url is missing")
	}
	if _, err := New(Options{Fetcher: &fakeFetcher{}, BaseURL: "/relative/path"}); err == nil {
		t.Fatalf("expected error when base url is relative")
	}
}

func TestOverviewURLAddsPageParameter(t *testing.T) {
	t.Parallel()

	scraper := newTestScraper(t, &fakeFetcher{})

	if got := scraper.OverviewURL(2); got != testBaseURL+"?seite=2" {
		t.Fatalf("unexpected overview url %q", got)
	}
}

func TestFetchOverviewPagesInRequestOrder(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		testBaseURL + "?seite=1": "one",
		testBaseURL + "?seite=2": "two",
		testBaseURL + "?seite=3": "three",
	}}
	scraper := newTestScraper(t, fetcher)

	pages, err := scraper.FetchOverviewPages(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchOverviewPages returned error: %v", err)
	}

	expected := []string{"one", "two", "three"}
	if len(pages) != len(expected) {
		t.Fatalf("expected %d pages, got %d", len(expected), len(pages))
	}
	for i, body := range expected {
		if pages[i] != body {
			t.Fatalf("expected page %d to be %q, got %q", i, body, pages[i])
		}
	}
}

func TestFetchOverviewPagesZeroCount(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	scraper := newTestScraper(t, fetcher)

	pages, err := scraper.FetchOverviewPages(context.Background(), 0)
	if err != nil {
		t.Fatalf("FetchOverviewPages returned error: %v", err)
	}
	if len(pages) != 0 {
		t.Fatalf("expected no pages, got %d", len(pages))
	}
	if len(fetcher.calls) != 0 {
		t.Fatalf("expected no requests, got %d", len(fetcher.calls))
	}
}

func TestFetchOverviewPagesRejectsNegativeCount(t *testing.T) {
	t.Parallel()

	scraper := newTestScraper(t, &fakeFetcher{})

	if _, err := scraper.FetchOverviewPages(context.Background(), -1); err == nil {
		t.Fatalf("expected error for negative count")
	}
}

func TestFetchOverviewPagesStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		pages: map[string]string{testBaseURL + "?seite=1": "one", testBaseURL + "?seite=3": "three"},
		err:   map[string]error{testBaseURL + "?seite=2": eris.New("connection refused")},
	}
	scraper := newTestScraper(t, fetcher)

	if _, err := scraper.FetchOverviewPages(context.Background(), 3); err == nil {
		t.Fatalf("expected fetch failure to propagate")
	}

	if len(fetcher.calls) != 2 {
		t.Fatalf("expected no retry and no further requests, got %v", fetcher.calls)
	}
}

func TestExtractSongURLsKeepsOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	pages := []string{
		`<div class="info"><a href="https://lyrics.example/a.html">A</a></div>
		 <div class="info"><span><a href="https://lyrics.example/b.html">B</a></span></div>`,
		`<div class="info"><a href="https://lyrics.example/a.html">A again</a></div>`,
	}

	urls, err := ExtractSongURLs(pages)
	if err != nil {
		t.Fatalf("ExtractSongURLs returned error: %v", err)
	}

	expected := []string{
		"https://lyrics.example/a.html",
		"https://lyrics.example/b.html",
		"https://lyrics.example/a.html",
	}
	if len(urls) != len(expected) {
		t.Fatalf("expected %d urls, got %v", len(expected), urls)
	}
	for i, u := range expected {
		if urls[i] != u {
			t.Fatalf("expected url %q at %d, got %q", u, i, urls[i])
		}
	}
}

func TestExtractSongURLsPageWithoutInfoContributesNothing(t *testing.T) {
	t.Parallel()

	urls, err := ExtractSongURLs([]string{`<html><body><div class="other"><a href="/x">x</a></div></body></html>`})
	if err != nil {
		t.Fatalf("ExtractSongURLs returned error: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected no urls, got %v", urls)
	}
}

func TestExtractSongURLsSkipsMissingTargets(t *testing.T) {
	t.Parallel()

	page := `<div class="info"><a href="/song/1">one</a></div>
		<div class="info"><a>no href</a></div>
		<div class="info">no anchor</div>
		<div class="info"><a href="">empty</a></div>`

	urls, err := ExtractSongURLs([]string{page})
	if err != nil {
		t.Fatalf("ExtractSongURLs returned error: %v", err)
	}

	if len(urls) != 2 || urls[0] != "/song/1" || urls[1] != "" {
		t.Fatalf("expected /song/1 and the empty target, got %q", urls)
	}
}

func TestExtractLyricsUsesFirstContainer(t *testing.T) {
	t.Parallel()

	text, found, err := ExtractLyrics(`<p class="lyrics">First verse</p><p class="lyrics">Second</p>`)
	if err != nil {
		t.Fatalf("ExtractLyrics returned error: %v", err)
	}
	if !found {
		t.Fatalf("expected lyrics to be found")
	}
	if text != "Firstverse" {
		t.Fatalf("expected Firstverse, got %q", text)
	}
}

func TestExtractLyricsReportsMissingContainer(t *testing.T) {
	t.Parallel()

	text, found, err := ExtractLyrics(`<div class="lyrics">not a paragraph</div>`)
	if err != nil {
		t.Fatalf("ExtractLyrics returned error: %v", err)
	}
	if found {
		t.Fatalf("expected lyrics container to be absent, got %q", text)
	}
}

func TestFetchLyricsCleansMarkup(t *testing.T) {
	t.Parallel()

	songURL := "https://lyrics.example/song.html"
	fetcher := &fakeFetcher{pages: map[string]string{
		songURL: "<html><body><p class='lyrics'>La la<br>\nla &amp; <b>more</b></p></body></html>",
	}}
	scraper := newTestScraper(t, fetcher)

	text, found, err := scraper.FetchLyrics(context.Background(), songURL)
	if err != nil {
		t.Fatalf("FetchLyrics returned error: %v", err)
	}
	if !found {
		t.Fatalf("expected lyrics to be found")
	}
	if text != "Lalala&more" {
		t.Fatalf("expected Lalala&more, got %q", text)
	}
}

func TestFetchLyricsPropagatesFetchError(t *testing.T) {
	t.Parallel()

	songURL := "https://lyrics.example/broken.html"
	fetcher := &fakeFetcher{err: map[string]error{songURL: eris.New("timeout")}}
	scraper := newTestScraper(t, fetcher)

	if _, _, err := scraper.FetchLyrics(context.Background(), songURL); err == nil {
		t.Fatalf("expected fetch error to propagate")
	}
}

func TestExtractSongURLsKeepsEmptyTarget(t *testing.T) {
	t.Parallel()

	page := `<div class="info"><a href="">e</a></div><div class="info"><a href="/s">s</a></div>`

	urls, err := ExtractSongURLs([]string{page})
	if err != nil {
		t.Fatalf("ExtractSongURLs returned error: %v", err)
	}

	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %q", urls)
	}
	if urls[0] != "" || urls[1] != "/s" {
		t.Fatalf("expected [\"\" \"/s\"], got %q", urls)
	}
}
