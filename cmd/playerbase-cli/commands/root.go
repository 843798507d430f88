package commands

import (
	"context"
	"fmt"
	"log/slog"
	"playerbase/lib/restyutil"
	"playerbase/lib/scrapers/wikipedia"
	"playerbase/lib/serviceutil"
	"playerbase/lib/telemetry"
	"playerbase/services/ingest"
	"playerbase/services/playerstore"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	dbPath     *string
	verbose    *bool

	config Config
	tel    telemetry.Telemetry
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "playerbase.json5", "The config file to read, searched for in parent directories.")
	dbPath = rootCmd.PersistentFlags().String("db", "", "Overrides the database from the config.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enables debug logging.")
}

var rootCmd = &cobra.Command{
	Use:   "playerbase-cli",
	Short: "playerbase-cli collects football player records into a sqlite database and reports on them.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		var err error
		config, err = loadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if *dbPath != "" {
			config.Database = *dbPath
		}

		tel, err = telemetry.SetupFromEnv(cmd.Context(), "playerbase-cli")
		if err != nil {
			slog.Debug("telemetry is disabled", "err", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if shutdownErr := tel.Shutdown(context.Background()); shutdownErr != nil {
		slog.Warn("failed to shutdown telemetry", "err", shutdownErr)
	}
	if err != nil {
		serviceutil.Fatal("command failed", err)
	}
}

func openStore(ctx context.Context) (*playerstore.Store, error) {
	store, err := playerstore.Open(ctx, config.DatabaseConfig())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return store, nil
}

func newScraper(store *playerstore.Store) (ingest.Scraper, error) {
	opts := wikipedia.ClientOptions{
		UserAgent: config.Scrape.UserAgent,
		Timeout:   config.Scrape.Timeout(),
	}
	if config.Scrape.DumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(config.Scrape.DumpDir)
		if err != nil {
			return ingest.Scraper{}, fmt.Errorf("create dump directory: %w", err)
		}
		opts.Dump = out
	}
	return ingest.Scraper{
		Fetcher: wikipedia.NewClient(opts),
		Store:   store,
		Delay:   config.Scrape.Delay(),
	}, nil
}
