package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"playerbase/lib/telemetry"
	"playerbase/services/ingest"
	"playerbase/services/playerstore"
	"playerbase/services/report"
	"time"

	"github.com/spf13/cobra"
)

var scrapeDelay *time.Duration

func init() {
	scrapeDelay = scrapeCmd.Flags().Duration("delay", -1, "Overrides the delay between two page fetches.")
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(scrapeOneCmd)
}

func scrapePlayers(ctx context.Context, store *playerstore.Store, path string) (ingest.BatchResult, error) {
	urls, err := ingest.ReadURLListFile(path)
	if err != nil {
		return ingest.BatchResult{}, fmt.Errorf("read url list: %w", err)
	}

	scraper, err := newScraper(store)
	if err != nil {
		return ingest.BatchResult{}, err
	}
	if *scrapeDelay >= 0 {
		scraper.Delay = *scrapeDelay
	}

	perfCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	telemetry.InstrumentPerfStats(perfCtx, 15*time.Second)

	t1 := time.Now()
	result := scraper.Run(ctx, urls)
	t2 := time.Now()

	slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds(), "saved", result.Saved, "failed", len(result.Failures))
	report.Batch(os.Stdout, result)
	return result, nil
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [path/to/urls.csv] [--delay <duration>]",
	Short: "Scrapes every biography page in a URL list into the database.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.UrlsPath
		if len(args) > 0 {
			path = args[0]
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		_, err = scrapePlayers(cmd.Context(), store, path)
		return err
	},
}

var scrapeOneCmd = &cobra.Command{
	Use:   "scrape-one <url>",
	Short: "Scrapes a single biography page, stores it and prints the record.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		scraper, err := newScraper(store)
		if err != nil {
			return err
		}
		record, err := scraper.ScrapeOne(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("scrape page: %w", err)
		}
		report.Player(os.Stdout, record)
		return nil
	},
}
