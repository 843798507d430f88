package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"playerbase/lib/player"
	"playerbase/lib/scrapers/wikipedia"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const DefaultDelay = time.Second

type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Upserter interface {
	Upsert(ctx context.Context, record player.Record) error
}

// Scraper fetches biography pages one at a time, waiting at least Delay
// between the start of two fetches, and upserts the extracted players.
type Scraper struct {
	Fetcher Fetcher
	Store   Upserter
	Delay   time.Duration
}

type PageFailure struct {
	URL string
	Err error
}

type BatchResult struct {
	RunID    string
	Total    int
	Saved    int
	Failures []PageFailure
}

// ScrapeOne fetches, extracts and stores a single page.
func (s Scraper) ScrapeOne(ctx context.Context, url string) (player.Record, error) {
	ctx, span := tracer.Start(ctx, "ScrapeOne")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	markup, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		span.SetStatus(codes.Error, "fetch failed")
		return player.Record{}, err
	}
	record, err := wikipedia.ExtractHTML(ctx, markup)
	if err != nil {
		span.SetStatus(codes.Error, "parse failed")
		return player.Record{}, fmt.Errorf("parse %s: %w", url, err)
	}
	record.URL = url

	err = s.Store.Upsert(ctx, record)
	if err != nil {
		span.SetStatus(codes.Error, "store failed")
		return player.Record{}, err
	}
	return record, nil
}

func newRunID() string {
	id, err := random.String(8)
	if err != nil {
		return time.Now().Format("150405")
	}
	return id
}

// Run scrapes urls in order. A page that fails is logged and recorded
// in the result, the batch always moves on to the next one. Run only
// stops early when ctx is cancelled.
func (s Scraper) Run(ctx context.Context, urls []string) BatchResult {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	result := BatchResult{
		RunID: newRunID(),
		Total: len(urls),
	}
	logger := slog.Default().With("run_id", result.RunID)
	logger.InfoContext(ctx, "scraping players", "total", len(urls), "delay", s.Delay)

	limit := rate.Inf
	if s.Delay > 0 {
		limit = rate.Every(s.Delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	for i, url := range urls {
		err := limiter.Wait(ctx)
		if err != nil {
			logger.WarnContext(ctx, "scrape interrupted", "err", err, "remaining", len(urls)-i)
			break
		}

		logger.InfoContext(ctx, "scraping", "page", fmt.Sprintf("%d/%d", i+1, len(urls)), "url", url)
		record, err := s.ScrapeOne(ctx, url)
		if err != nil {
			logger.ErrorContext(ctx, "failed to scrape page", "url", url, "err", err)
			result.Failures = append(result.Failures, PageFailure{URL: url, Err: err})
			continue
		}
		result.Saved++
		logger.InfoContext(ctx, "saved", "url", url, "name", record.Name.V)
	}

	span.SetAttributes(
		attribute.Int("saved", result.Saved),
		attribute.Int("failed", len(result.Failures)),
	)
	logger.InfoContext(ctx, "scrape completed",
		"saved", result.Saved,
		"failed", len(result.Failures),
	)
	return result
}
