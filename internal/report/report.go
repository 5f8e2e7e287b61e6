// Package report renders TeamReports as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gridstats/go-cfb-metrics/internal/model"
	"github.com/gridstats/go-cfb-metrics/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintTeamHeader prints the one-line report header.
func PrintTeamHeader(w io.Writer, r *model.TeamReport) {
	scope := "full season"
	if r.Filtered {
		scope = "filtered"
	}
	fmt.Fprintf(w, "\nTeam: %s  |  Weeks: %d  |  Scope: %s\n\n", r.Team, r.Weeks.MaxWeek(), scope)
}

// PrintFullReport prints every situation table in order.
func PrintFullReport(w io.Writer, r *model.TeamReport) {
	PrintTeamHeader(w, r)
	PrintExplosiveTable(w, r)
	PrintPenaltyTable(w, r)
	PrintFourthDownTable(w, r)
	PrintPostTurnoverTable(w, r)
	PrintMiddleEightTable(w, r)
	PrintSpecialTeamsTable(w, r)
	PrintZoneTable(w, r)
	if r.ThirdDownReceiving != nil || r.RedZoneReceiving != nil {
		PrintReceivingTables(w, r)
	}
}

// PrintExplosiveTable prints the offensive explosive play summary.
func PrintExplosiveTable(w io.Writer, r *model.TeamReport) {
	fmt.Fprintln(w, "Explosive plays (run 15+, pass 20+)")
	table := newTable(w)
	table.Header("TOTAL", "GAMES", "PER_GAME", "L3_TOTAL", "L3_PER_GAME")
	s := r.Explosive
	table.Append(
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Games),
		fmt.Sprintf("%.1f", s.PerGame()),
		strconv.Itoa(s.Last3Total),
		fmt.Sprintf("%.1f", s.Last3PerGame()),
	)
	table.Render()
	fmt.Fprintln(w)
}

// PrintPenaltyTable prints penalty totals plus the by-type breakdown.
func PrintPenaltyTable(w io.Writer, r *model.TeamReport) {
	fmt.Fprintln(w, "Penalties committed")
	table := newTable(w)
	table.Header("TOTAL", "ACCEPTED", "DECLINED", "OFFSET", "YARDS", "PER_GAME", "L3_ACC", "L3_YDS")
	s := r.Penalties
	table.Append(
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Accepted),
		strconv.Itoa(s.Declined),
		strconv.Itoa(s.Offsetting),
		strconv.Itoa(s.Yards),
		fmt.Sprintf("%.1f", s.PerGame()),
		strconv.Itoa(s.Last3Accepted),
		strconv.Itoa(s.Last3Yards),
	)
	table.Render()

	if len(s.ByType) > 0 {
		types := make([]string, 0, len(s.ByType))
		for t := range s.ByType {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool {
			if s.ByType[types[i]] != s.ByType[types[j]] {
				return s.ByType[types[i]] > s.ByType[types[j]]
			}
			return types[i] < types[j]
		})
		bt := newTable(w)
		bt.Header("PENALTY", "COUNT")
		for _, t := range types {
			bt.Append(t, strconv.Itoa(s.ByType[t]))
		}
		bt.Render()
	}
	fmt.Fprintln(w)
}

var distanceBuckets = []string{
	"1 yard or less", "2-3 yards", "4-5 yards", "6-10 yards", "11+ yards",
}

// PrintFourthDownTable prints 4th-down go-for-it results with the distance
// breakdown.
func PrintFourthDownTable(w io.Writer, r *model.TeamReport) {
	fmt.Fprintln(w, "4th down (go for it)")
	table := newTable(w)
	table.Header("ATT", "CONV", "RATE", "L3_ATT", "L3_CONV", "L3_RATE")
	s := r.FourthDowns
	table.Append(
		strconv.Itoa(s.Attempts),
		strconv.Itoa(s.Conversions),
		fmt.Sprintf("%.0f%%", s.Rate()),
		strconv.Itoa(s.Last3Attempts),
		strconv.Itoa(s.Last3Conversions),
		fmt.Sprintf("%.0f%%", s.Last3Rate()),
	)
	table.Render()

	bt := newTable(w)
	bt.Header("DISTANCE", "ATT", "CONV", "RATE")
	for _, bucket := range distanceBuckets {
		line, ok := s.DistanceBreakdown[bucket]
		if !ok {
			continue
		}
		bt.Append(bucket,
			strconv.Itoa(line.Attempts),
			strconv.Itoa(line.Conversions),
			fmt.Sprintf("%.0f%%", line.Rate()),
		)
	}
	bt.Render()
	fmt.Fprintln(w)
}

// PrintPostTurnoverTable prints points off turnovers plus the event log.
func PrintPostTurnoverTable(w io.Writer, r *model.TeamReport) {
	fmt.Fprintln(w, "Points off turnovers")
	table := newTable(w)
	table.Header("GIVEAWAYS", "TAKEAWAYS", "PTS_FOR", "PTS_AGAINST", "NET", "L3_NET", "OPP_SCORE%", "OWN_SCORE%")
	s := r.PostTurnover
	table.Append(
		strconv.Itoa(s.TeamTurnovers),
		strconv.Itoa(s.OpponentTurnovers),
		strconv.Itoa(s.PointsScored),
		strconv.Itoa(s.PointsAllowed),
		fmt.Sprintf("%+d", s.NetPoints()),
		fmt.Sprintf("%+d", s.Last3Net()),
		fmt.Sprintf("%.0f%%", s.TeamScoreRate()),
		fmt.Sprintf("%.0f%%", s.OpponentScoreRate()),
	)
	table.Render()

	if len(s.Events) > 0 {
		et := newTable(w)
		et.Header("WK", "OPPONENT", "Q", "CLOCK", "TYPE", "SIDE", "RESULT", "PTS")
		for _, e := range s.Events {
			side := "takeaway"
			if e.OwnedByTeam {
				side = "giveaway"
			}
			et.Append(
				strconv.Itoa(e.Week),
				e.Opponent,
				strconv.Itoa(e.Period),
				fmtClock(e.ClockSeconds),
				e.Type.String(),
				side,
				e.DriveResult,
				strconv.Itoa(e.Points),
			)
		}
		et.Render()
	}
	fmt.Fprintln(w)
}

// PrintMiddleEightTable prints middle-eight scoring.
func PrintMiddleEightTable(w io.Writer, r *model.TeamReport) {
	fmt.Fprintln(w, "Middle eight (last 4:00 Q2 + first 4:00 Q3)")
	table := newTable(w)
	table.Header("PTS_FOR", "PTS_AGAINST", "NET", "AVG_NET", "L3_NET")
	s := r.MiddleEight
	table.Append(
		strconv.Itoa(s.PointsScored),
		strconv.Itoa(s.PointsAllowed),
		fmt.Sprintf("%+d", s.Net()),
		fmt.Sprintf("%+.1f", s.AvgNetPerGame()),
		fmt.Sprintf("%+d", s.Last3Net()),
	)
	table.Render()
	fmt.Fprintln(w)
}

// PrintSpecialTeamsTable prints the kicking unit summary.
func PrintSpecialTeamsTable(w io.Writer, r *model.TeamReport) {
	fmt.Fprintln(w, "Special teams")
	table := newTable(w)
	table.Header("PLAYS", "EXPL", "EXPL_ALLOW", "BAD", "BAD_ALLOW", "TD", "TD_ALLOW", "BLK", "BLK_ALLOW")
	s := r.SpecialTeams
	table.Append(
		strconv.Itoa(s.TotalPlays),
		strconv.Itoa(s.Explosive),
		strconv.Itoa(s.ExplosiveAllowed),
		strconv.Itoa(s.BadResults),
		strconv.Itoa(s.BadResultsAllowed),
		strconv.Itoa(s.TDsScored),
		strconv.Itoa(s.TDsAllowed),
		strconv.Itoa(s.PuntBlocks),
		strconv.Itoa(s.PuntBlocksAllowed),
	)
	table.Render()
	fmt.Fprintln(w)
}

// PrintZoneTable prints the three scoring-zone summaries as rows.
func PrintZoneTable(w io.Writer, r *model.TeamReport) {
	fmt.Fprintln(w, "Scoring zones")
	table := newTable(w)
	table.Header("ZONE", "PLAYS", "DRIVES", "SCORE_DRIVES", "DRIVE_SCORE%", "TD", "TD%", "TO", "EXPL", "3RD", "4TH", "AVG_PPA")
	for _, s := range []model.ZoneSummary{r.TightRedZone, r.RedZone, r.GreenZone} {
		ppa := "—"
		if s.AvgPPA != 0 {
			ppa = fmt.Sprintf("%.2f", s.AvgPPA)
		}
		table.Append(
			s.Zone,
			strconv.Itoa(s.TotalPlays),
			strconv.Itoa(s.DriveAttempts),
			strconv.Itoa(s.ScoringDrives),
			fmt.Sprintf("%.0f%%", s.DriveScoreRate()),
			strconv.Itoa(s.Touchdowns),
			fmt.Sprintf("%.0f%%", s.TDRate()),
			strconv.Itoa(s.Turnovers),
			strconv.Itoa(s.Explosive),
			fmt.Sprintf("%d/%d", s.ThirdDowns.Conversions, s.ThirdDowns.Attempts),
			fmt.Sprintf("%d/%d", s.FourthDowns.Conversions, s.FourthDowns.Attempts),
			ppa,
		)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintReceivingTables prints the situational receiving summaries.
func PrintReceivingTables(w io.Writer, r *model.TeamReport) {
	for _, s := range []*model.ReceivingSummary{r.ThirdDownReceiving, r.RedZoneReceiving} {
		if s == nil {
			continue
		}
		fmt.Fprintf(w, "Receiving: %s\n", s.Situation)
		table := newTable(w)
		table.Header("TGT", "REC", "CATCH%", "1D", "TD", "YDS", "L3_TGT", "L3_REC")
		table.Append(
			strconv.Itoa(s.Total.Targets),
			strconv.Itoa(s.Total.Receptions),
			fmt.Sprintf("%.0f%%", s.Total.CatchRate()),
			strconv.Itoa(s.Total.FirstDowns),
			strconv.Itoa(s.Total.Touchdowns),
			strconv.Itoa(s.Total.Yards),
			strconv.Itoa(s.Last3.Targets),
			strconv.Itoa(s.Last3.Receptions),
		)
		table.Render()

		if len(s.Players) > 0 {
			pt := newTable(w)
			pt.Header("PLAYER", "TGT", "REC", "CATCH%", "1D", "TD", "YDS")
			for _, p := range s.Players {
				pt.Append(
					p.Name,
					strconv.Itoa(p.Line.Targets),
					strconv.Itoa(p.Line.Receptions),
					fmt.Sprintf("%.0f%%", p.Line.CatchRate()),
					strconv.Itoa(p.Line.FirstDowns),
					strconv.Itoa(p.Line.Touchdowns),
					strconv.Itoa(p.Line.Yards),
				)
			}
			pt.Render()
		}
		fmt.Fprintln(w)
	}
}

// PrintTrendTable prints one situation's weekly series with BYE rows.
func PrintTrendTable(w io.Writer, r *model.TeamReport, situation string) error {
	values, label, err := Series(r, situation)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s by week\n", r.Team, label)
	table := newTable(w)
	table.Header("WK", "OPPONENT", label)
	for wk := 1; wk <= r.Weeks.MaxWeek(); wk++ {
		val := "0"
		if wk <= len(values) {
			val = strconv.Itoa(values[wk-1])
		}
		opp := r.Weeks.Opponent(wk)
		if opp == model.ByeOpponent {
			val = "—"
		}
		table.Append(strconv.Itoa(wk), opp, val)
	}
	table.Render()
	return nil
}

// PrintGames prints a team's schedule with BYE rows.
func PrintGames(w io.Writer, team string, weeks model.WeekIndex) {
	fmt.Fprintf(w, "%s schedule (%d weeks)\n", team, weeks.MaxWeek())
	table := newTable(w)
	table.Header("WK", "OPPONENT", "DATE", "CONF", "P4")
	for wk := 1; wk <= weeks.MaxWeek(); wk++ {
		opp := weeks.Opponent(wk)
		if opp == model.ByeOpponent {
			table.Append(strconv.Itoa(wk), model.ByeOpponent, "—", "—", "—")
			continue
		}
		g := weeks.Games[weeks.WeekGames[wk]]
		table.Append(strconv.Itoa(wk), opp, g.Date, yesNo(g.IsConference), yesNo(g.IsPower4Opponent))
	}
	table.Render()
}

// PrintTeams prints the stored-team listing.
func PrintTeams(w io.Writer, teams []storage.TeamCount) {
	table := newTable(w)
	table.Header("TEAM", "GAMES", "PLAYS")
	for _, t := range teams {
		table.Append(t.Team, strconv.Itoa(t.Games), strconv.Itoa(t.Plays))
	}
	table.Render()
}

// PrintRaw prints ad-hoc query results.
func PrintRaw(w io.Writer, rr *storage.RawRows) {
	table := newTable(w)
	header := make([]any, len(rr.Columns))
	for i, c := range rr.Columns {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rr.Rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "%d row(s)\n", len(rr.Rows))
}

// Series resolves a situation name to its weekly values, for trend tables
// and chart rendering.
func Series(r *model.TeamReport, situation string) ([]int, string, error) {
	switch situation {
	case "explosive":
		return r.Explosive.WeekTrend, "EXPLOSIVE", nil
	case "penalties":
		return r.Penalties.CountTrend, "PENALTIES", nil
	case "penalty-net-yards":
		return r.Penalties.NetYardsTrend, "NET_PEN_YDS", nil
	case "fourth-down":
		return r.FourthDowns.ConversionTrend, "4TH_CONV", nil
	case "turnover-net":
		return r.PostTurnover.NetTrend, "TO_NET_PTS", nil
	case "middle-eight":
		return r.MiddleEight.NetTrend, "M8_NET", nil
	case "special-teams":
		return r.SpecialTeams.ExplosiveTrend, "ST_EXPL", nil
	case "redzone-td":
		return r.RedZone.TDTrend, "RZ_TD", nil
	case "targets":
		if r.ThirdDownReceiving == nil {
			return nil, "", fmt.Errorf("no receiving feed loaded for %s", r.Team)
		}
		return r.ThirdDownReceiving.TargetTrend, "3RD_TGT", nil
	}
	return nil, "", fmt.Errorf("unknown situation %q (try: explosive, penalties, penalty-net-yards, fourth-down, turnover-net, middle-eight, special-teams, redzone-td, targets)", situation)
}

func fmtClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func yesNo(b *bool) string {
	if b == nil {
		return "?"
	}
	if *b {
		return "yes"
	}
	return "no"
}
