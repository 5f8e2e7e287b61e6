package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridstats/go-cfb-metrics/internal/aggregate"
	"github.com/gridstats/go-cfb-metrics/internal/attribution"
	"github.com/gridstats/go-cfb-metrics/internal/filter"
	"github.com/gridstats/go-cfb-metrics/internal/model"
	"github.com/gridstats/go-cfb-metrics/internal/report"
	"github.com/gridstats/go-cfb-metrics/internal/schedule"
	"github.com/gridstats/go-cfb-metrics/internal/sis"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

var (
	flagConference    bool
	flagNonConference bool
	flagPower4        bool
	flagLast3         bool
)

var reportCmd = &cobra.Command{
	Use:   "report <team>",
	Short: "Full situational report for a team",
	Long: `Compute the full situational report for a team: explosive plays,
penalties, 4th downs, points off turnovers, the middle eight, special
teams, scoring zones, and situational receiving when a feed is loaded.

Filters re-run the identical aggregation over the matching games only.
Games with unknown conference/power-4 enrichment match no class filter.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	addFilterFlags(reportCmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagConference, "conference", false, "conference games only")
	cmd.Flags().BoolVar(&flagNonConference, "non-conference", false, "non-conference games only")
	cmd.Flags().BoolVar(&flagPower4, "power4", false, "power-4 opponents only")
	cmd.Flags().BoolVar(&flagLast3, "last3", false, "3 most recent games only")
}

func filterSpecFromFlags() (filter.Spec, error) {
	spec := filter.Spec{LastThree: flagLast3}
	set := 0
	if flagConference {
		spec.Mode = filter.Conference
		set++
	}
	if flagNonConference {
		spec.Mode = filter.NonConference
		set++
	}
	if flagPower4 {
		spec.Mode = filter.Power4
		set++
	}
	if set > 1 {
		return spec, fmt.Errorf("--conference, --non-conference and --power4 are mutually exclusive")
	}
	return spec, nil
}

// buildTeamReport loads a team's stored data and aggregates it under the
// given filter. The week index is rebuilt from the filtered game list so
// every trend array lines up with the games that produced it.
func buildTeamReport(db *storage.DB, team string, spec filter.Spec) (*model.TeamReport, error) {
	games, err := db.GetGames(team)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("no games stored for %s, run 'cfbmetrics load %s <dir>' first", team, team)
	}
	plays, err := db.GetPlays(team)
	if err != nil {
		return nil, fmt.Errorf("query plays: %w", err)
	}

	filtered := !spec.IsDefault()
	weeks := schedule.Build(filter.Games(games, spec), 0)
	plays = filter.Apply(plays, spec)

	resolver := attribution.NewResolver(attribution.DefaultTeamTable().Merge(cfg.Teams.Abbreviations))
	builder := aggregate.NewBuilder(resolver)
	r := builder.TeamReport(team, plays, weeks, filtered)

	feed, err := db.GetReceiving(team)
	if err != nil {
		return nil, fmt.Errorf("query receiving: %w", err)
	}
	if feed != nil {
		r.ThirdDownReceiving = sis.Summarize(feed.ThirdDown, weeks, spec)
		r.RedZoneReceiving = sis.Summarize(feed.RedZone, weeks, spec)
	}
	return &r, nil
}

func runReport(cmd *cobra.Command, args []string) error {
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
	report.PrintFullReport(os.Stdout, r)
	return nil
}
