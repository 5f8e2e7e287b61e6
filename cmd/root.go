package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/config"
)

var (
	dbPath string
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cfbmetrics",
	Short: "College football situational metrics tool",
	Long:  "Classify play-by-play data and compute situational team metrics (explosive plays, penalties, 4th downs, turnovers, scoring zones).",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	defaultDB := cfg.Database.Path
	if defaultDB == "" {
		defaultDB = filepath.Join(mustUserHome(), ".cfbmetrics", "metrics.db")
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(loadSISCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(dropCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
