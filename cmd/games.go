package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/report"
	"github.com/gridstats/go-cfb-metrics/internal/schedule"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var gamesCmd = &cobra.Command{
	Use:   "games <team>",
	Short: "Show a team's schedule week by week, including byes",
	Args:  cobra.ExactArgs(1),
	RunE:  runGames,
}

func runGames(cmd *cobra.Command, args []string) error {
	team := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.GetGames(team)
	if err != nil {
		return fmt.Errorf("query games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintf(os.Stdout, "No games stored for %s.\n", team)
		return nil
	}
	weeks := schedule.Build(games, 0)
	report.PrintGames(os.Stdout, team, weeks)
	return nil
}
