package commands

import (
	"context"
	"fmt"
	"os"
	"playerbase/services/clubs"
	"playerbase/services/playerstore"
	"playerbase/services/report"

	"github.com/spf13/cobra"
)

var threshold *float64

func init() {
	threshold = standardizeCmd.Flags().Float64("threshold", 0, "Overrides the similarity (0-100) above which two club names merge.")
	rootCmd.AddCommand(standardizeCmd)
}

func standardizeClubs(ctx context.Context, store *playerstore.Store) error {
	t := config.Clubs.Threshold
	if *threshold > 0 {
		t = *threshold
	}
	result, err := clubs.Standardize(ctx, store, t)
	if err != nil {
		return fmt.Errorf("standardize club names: %w", err)
	}
	report.Standardization(os.Stdout, result)
	return nil
}

var standardizeCmd = &cobra.Command{
	Use:   "standardize [--threshold <score>]",
	Short: "Normalizes club names and merges near-duplicate spellings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return standardizeClubs(cmd.Context(), store)
	},
}
