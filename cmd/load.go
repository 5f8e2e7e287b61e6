package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/pbp"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var loadCmd = &cobra.Command{
	Use:   "load <team> <dir>",
	Short: "Load a team's play-by-play game files and store them",
	Long:  "Read every game JSON file in <dir>, normalize the plays for <team>, and store games and plays in the database.",
	Args:  cobra.ExactArgs(2),
	RunE:  runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	team, dir := args[0], args[1]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Loading %s games from %s...\n", team, dir)
	season, err := pbp.LoadTeamDir(dir, team)
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	if err := db.InsertGames(team, season.Games); err != nil {
		return fmt.Errorf("store games: %w", err)
	}
	if err := db.InsertPlays(team, season.Plays); err != nil {
		return fmt.Errorf("store plays: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Stored %d games, %d plays for %s.\n",
		len(season.Games), len(season.Plays), team)
	return nil
}
