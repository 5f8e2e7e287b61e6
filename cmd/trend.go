package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/report"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var trendSituation string

var trendCmd = &cobra.Command{
	Use:   "trend <team>",
	Short: "Week-by-week trend table for one situation",
	Long:  "Print a team's weekly series for one situation, with BYE rows for open weeks. Situations: explosive, penalties, penalty-net-yards, fourth-down, turnover-net, middle-eight, special-teams, redzone-td, targets.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendSituation, "situation", "explosive", "situation to trend")
	addFilterFlags(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	spec, err := filterSpecFromFlags()
	if err != nil {
		return err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	r, err := buildTeamReport(db, args[0], spec)
	if err != nil {
		return err
	}
	return report.PrintTrendTable(os.Stdout, r, trendSituation)
}
