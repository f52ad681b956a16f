package scraper

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"wembleycal/internal/config"
	"wembleycal/internal/event"
	"wembleycal/internal/logger"
)

const UserAgent = "wembleycal/1.0 (+https://github.com/wembleycal)"

// Scraper fetches the events listing page and turns it into event records.
type Scraper struct {
	client      *http.Client
	url         string
	base        *url.URL
	loc         *time.Location
	venue       string
	duration    time.Duration
	parentDepth int
	retries     uint64
}

// New creates a Scraper from the run configuration. It fails if the
// configured timezone has no rule data available: silently treating local
// times as UTC would shift every timed event during the DST period.
func New(cfg *config.Config) (*Scraper, error) {
	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone rules for %s: %w", cfg.Calendar.Timezone, err)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
		url:         cfg.SourceURL,
		base:        base,
		loc:         loc,
		venue:       cfg.Venue,
		duration:    cfg.DefaultDuration(),
		parentDepth: cfg.ParentDepth,
		retries:     uint64(cfg.HTTP.Retries),
	}, nil
}

// FetchEvents downloads the listing page and extracts its events.
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; any other non-200 status fails immediately.
func (s *Scraper) FetchEvents() ([]*event.Event, error) {
	start := time.Now()

	var body []byte
	fetch := func() error {
		req, err := http.NewRequest(http.MethodGet, s.url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode >= 500:
			return fmt.Errorf("server error: status %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.retries)
	if err := backoff.Retry(fetch, policy); err != nil {
		return nil, err
	}

	logger.RecordTiming("scrape.fetch", time.Since(start))
	logger.Debug("fetched listing page", logger.Fields{
		"url":   s.url,
		"bytes": len(body),
	})

	return s.Extract(bytes.NewReader(body))
}
