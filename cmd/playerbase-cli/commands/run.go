package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var skipScrape *bool

func init() {
	skipScrape = runCmd.Flags().Bool("skip-scrape", false, "Skips scraping the URL list.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the whole pipeline: import, scrape, enrich, standardize and report.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := importPlayers(ctx, store, config.CsvPath); err != nil {
			return err
		}
		if !*skipScrape {
			if _, err := scrapePlayers(ctx, store, config.UrlsPath); err != nil {
				return err
			}
		}
		if ctx.Err() != nil {
			slog.Warn("interrupted, stopping after scrape", "err", ctx.Err())
			return nil
		}
		if err := enrichPlayers(ctx, store); err != nil {
			return err
		}
		if err := standardizeClubs(ctx, store); err != nil {
			return err
		}
		if err := reportClubs(ctx, store); err != nil {
			return err
		}
		return reportCompare(ctx, store, config.Report.Club)
	},
}
