package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/sis"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var loadSISCmd = &cobra.Command{
	Use:   "loadsis <file>",
	Short: "Load a situational receiving feed and store its rows",
	Long:  "Parse a situational receiving export (3rd-down and red-zone targets per team) and store its rows for every team it covers.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadSIS,
}

func runLoadSIS(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read feed: %w", err)
	}
	feeds, err := sis.Parse(data)
	if err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	for _, feed := range feeds {
		if err := db.InsertReceiving(feed); err != nil {
			return fmt.Errorf("store receiving rows for %s: %w", feed.Team, err)
		}
		fmt.Fprintf(os.Stdout, "Stored receiving rows for %s (%d weeks 3rd down, %d weeks red zone).\n",
			feed.Team, len(feed.ThirdDown.Weeks), len(feed.RedZone.Weeks))
	}
	return nil
}
