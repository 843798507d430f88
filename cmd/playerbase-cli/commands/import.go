package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"playerbase/services/ingest"
	"playerbase/services/playerstore"
	"playerbase/services/report"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

func importPlayers(ctx context.Context, store *playerstore.Store, path string) error {
	result, err := ingest.ImportCSVFile(ctx, store, path)
	if err != nil {
		return fmt.Errorf("import csv: %w", err)
	}
	slog.Info("imported csv", "path", path, "inserted", result.Inserted, "skipped", result.Skipped)
	report.Import(os.Stdout, result)
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import [path/to/players.csv]",
	Short: "Imports a CSV export of players, keeping rows already in the database.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.CsvPath
		if len(args) > 0 {
			path = args[0]
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return importPlayers(cmd.Context(), store, path)
	},
}
