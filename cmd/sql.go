package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/report"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the metrics database",
	Long: `Run an arbitrary SQL query against the metrics database and print results as a table.

Schema overview:
  games(team, game_id, week, opponent, home_team, away_team, game_date,
    is_conference, is_power4_opponent)
  plays(team, game_id, drive_id, drive_number, play_number, period,
    clock_seconds, down, distance, yards_to_goal, offense, defense,
    play_type, play_text, play_classification, yards_gained, scoring,
    turnover, turnover_type, penalty_type, penalty_decision,
    drive_started_after_turnover, week, opponent, is_conference,
    is_power4_opponent, ppa)
  receiving(team, situation, scope, week, player, opponent, targets,
    receptions, first_downs, touchdowns, yards)

Note: is_conference / is_power4_opponent are NULL when the source feed
carried no enrichment for the game.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rr, err := db.RawQuery(query)
	if err != nil {
		return err
	}
	if len(rr.Rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}
	report.PrintRaw(os.Stdout, rr)
	return nil
}
