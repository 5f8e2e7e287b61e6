package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/charts"
	"github.com/gridstats/go-cfb-metrics/internal/report"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var (
	chartSituation string
	chartOut       string
)

var chartCmd = &cobra.Command{
	Use:   "chart <team>",
	Short: "Render a weekly trend line chart to HTML",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartSituation, "situation", "explosive", "situation to chart")
	chartCmd.Flags().StringVar(&chartOut, "out", "trend.html", "output HTML file")
	addFilterFlags(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
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
	values, label, err := report.Series(r, chartSituation)
	if err != nil {
		return err
	}

	config := charts.DefaultConfig()
	config.Title = fmt.Sprintf("%s: %s by week", r.Team, chartSituation)
	if r.Filtered {
		config.Subtitle = "filtered"
	}
	series := []charts.Series{{Name: label, Values: values}}
	if err := charts.RenderTrend(r.Weeks, series, config, chartOut); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", chartOut)
	return nil
}
