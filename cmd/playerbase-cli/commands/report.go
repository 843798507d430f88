package commands

import (
	"context"
	"fmt"
	"os"
	"playerbase/services/playerstore"
	"playerbase/services/report"

	"github.com/spf13/cobra"
)

func init() {
	reportCmd.AddCommand(reportClubsCmd)
	reportCmd.AddCommand(reportCompareCmd)
	rootCmd.AddCommand(reportCmd)
}

func reportClubs(ctx context.Context, store *playerstore.Store) error {
	stats, err := store.ClubStats(ctx)
	if err != nil {
		return fmt.Errorf("compute club stats: %w", err)
	}
	report.ClubStats(os.Stdout, stats)
	return nil
}

func reportCompare(ctx context.Context, store *playerstore.Store, club string) error {
	comparisons, err := store.ComparePlayers(ctx, club)
	if err != nil {
		return fmt.Errorf("compare players: %w", err)
	}
	report.Comparison(os.Stdout, club, comparisons)
	return nil
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Prints reports over the stored players.",
}

var reportClubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "Prints player count, average age and average appearances per club.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return reportClubs(cmd.Context(), store)
	},
}

var reportCompareCmd = &cobra.Command{
	Use:   "compare [club]",
	Short: "Lists the players of a club with how many teammates outperform each of them.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		club := config.Report.Club
		if len(args) > 0 {
			club = args[0]
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return reportCompare(cmd.Context(), store, club)
	},
}
