package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/report"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List stored teams",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

func runTeams(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	teams, err := db.ListTeams()
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		fmt.Fprintln(os.Stdout, "No teams stored yet. Run 'cfbmetrics load <team> <dir>' to add one.")
		return nil
	}
	report.PrintTeams(os.Stdout, teams)
	return nil
}
