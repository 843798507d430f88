package commands

import (
	"context"
	"fmt"
	"log/slog"
	"playerbase/services/playerstore"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func enrichPlayers(ctx context.Context, store *playerstore.Store) error {
	if err := store.EnsureDerivedColumns(ctx); err != nil {
		return fmt.Errorf("add derived columns: %w", err)
	}
	updated, err := store.ComputeDerivedColumns(ctx)
	if err != nil {
		return fmt.Errorf("compute derived columns: %w", err)
	}
	slog.Info("computed derived columns", "rows", updated)
	return nil
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Computes age categories and goals per club game for every player.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return enrichPlayers(cmd.Context(), store)
	},
}
