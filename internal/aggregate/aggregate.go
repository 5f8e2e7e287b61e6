// Package aggregate turns classified plays into per-team situation
// summaries. Aggregation is deterministic: the same play set and week
// index always produce an identical TeamReport, and filtered reports are
// built by re-running the same code over the filtered subset.
package aggregate

import (
	"sort"
	"strings"

	"github.com/gridstats/go-cfb-metrics/internal/attribution"
	"github.com/gridstats/go-cfb-metrics/internal/classify"
	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// Builder assembles TeamReports. Safe for reuse across teams.
type Builder struct {
	resolver   *attribution.Resolver
	classifier *classify.Classifier
}

func NewBuilder(resolver *attribution.Resolver) *Builder {
	if resolver == nil {
		resolver = attribution.NewResolver(nil)
	}
	return &Builder{resolver: resolver, classifier: classify.New(resolver)}
}

// TeamReport builds the full situational report for team over plays, with
// weekly trends aligned to weeks (length MaxWeek, 0 at BYE weeks).
func (b *Builder) TeamReport(team string, plays []model.Play, weeks model.WeekIndex, filtered bool) model.TeamReport {
	classified := b.classifier.ClassifyAll(plays, team)
	ctx := newReportContext(team, classified, weeks)

	return model.TeamReport{
		Team:     team,
		Weeks:    weeks,
		Filtered: filtered,

		Explosive:    ctx.explosive(),
		Penalties:    ctx.penalties(),
		FourthDowns:  ctx.fourthDowns(),
		PostTurnover: ctx.postTurnover(),
		MiddleEight:  ctx.middleEight(),
		SpecialTeams: ctx.specialTeams(),

		TightRedZone: ctx.zone("tight red zone", func(t model.Tags) bool { return t.TightRedZone }),
		RedZone:      ctx.zone("red zone", func(t model.Tags) bool { return t.RedZone }),
		GreenZone:    ctx.zone("green zone", func(t model.Tags) bool { return t.GreenZone }),
	}
}

// reportContext carries the shared state of one TeamReport build.
type reportContext struct {
	team    string
	plays   []model.ClassifiedPlay
	weeks   model.WeekIndex
	last3   map[int]bool
	games   int
	maxWeek int
}

func newReportContext(team string, plays []model.ClassifiedPlay, weeks model.WeekIndex) *reportContext {
	last3 := make(map[int]bool)
	for _, wk := range weeks.LastN(3) {
		last3[wk] = true
	}
	seen := make(map[string]bool)
	for _, p := range plays {
		seen[p.GameID] = true
	}
	return &reportContext{
		team:    team,
		plays:   plays,
		weeks:   weeks,
		last3:   last3,
		games:   len(seen),
		maxWeek: weeks.MaxWeek(),
	}
}

// weekOf resolves a play's canonical week, preferring the play's own week
// and falling back to the index.
func (c *reportContext) weekOf(p model.ClassifiedPlay) int {
	if p.Week > 0 {
		return p.Week
	}
	return c.weeks.WeekOf(p.GameID)
}

func (c *reportContext) trend() []int { return make([]int, c.maxWeek) }

func (c *reportContext) bump(trend []int, week, by int) {
	if week >= 1 && week <= len(trend) {
		trend[week-1] += by
	}
}

func (c *reportContext) forTeam(name string) bool {
	return strings.EqualFold(name, c.team)
}

func (c *reportContext) explosive() model.ExplosiveSummary {
	s := model.ExplosiveSummary{
		Games:      c.games,
		Last3Games: len(c.last3),
		WeekTrend:  c.trend(),
	}
	for _, p := range c.plays {
		if !p.Tags.Explosive {
			continue
		}
		wk := c.weekOf(p)
		s.Total++
		c.bump(s.WeekTrend, wk, 1)
		if c.last3[wk] {
			s.Last3Total++
		}
		s.Plays = append(s.Plays, p)
	}
	return s
}

func (c *reportContext) penalties() model.PenaltySummary {
	s := model.PenaltySummary{
		Games:         c.games,
		ByType:        make(map[string]int),
		NetYardsTrend: c.trend(),
		CountTrend:    c.trend(),
	}
	for _, p := range c.plays {
		if !p.HasPenalty() || p.CommittingTeam == model.UnknownTeam || p.CommittingTeam == "" {
			continue
		}
		wk := c.weekOf(p)
		mine := c.forTeam(p.CommittingTeam)
		excluded := attribution.Excluded(p.Play)

		if mine {
			s.Total++
			if c.last3[wk] {
				s.Last3Total++
			}
			s.Plays = append(s.Plays, p)
			switch {
			case p.PenaltyDecision == model.DecisionOffsetting,
				strings.Contains(strings.ToUpper(p.PlayText), "OFFSETTING"):
				s.Offsetting++
			case p.PenaltyDecision == model.DecisionDeclined,
				strings.Contains(strings.ToUpper(p.PlayText), "DECLINED"):
				s.Declined++
			}
		}
		if excluded {
			continue
		}

		yards := attribution.PenaltyYards(p.PlayText, p.PenaltyType)
		if mine {
			s.Accepted++
			s.Yards += yards
			s.ByType[p.PenaltyType]++
			c.bump(s.CountTrend, wk, 1)
			c.bump(s.NetYardsTrend, wk, -yards)
			if c.last3[wk] {
				s.Last3Accepted++
				s.Last3Yards += yards
			}
		} else {
			// Opponent flag: counts toward the team's net yardage.
			c.bump(s.NetYardsTrend, wk, yards)
		}
	}
	return s
}

// distanceBucket labels a 4th-down distance for the breakdown table.
func distanceBucket(distance int) string {
	switch {
	case distance <= 1:
		return "1 yard or less"
	case distance <= 3:
		return "2-3 yards"
	case distance <= 5:
		return "4-5 yards"
	case distance <= 10:
		return "6-10 yards"
	default:
		return "11+ yards"
	}
}

func (c *reportContext) fourthDowns() model.FourthDownSummary {
	s := model.FourthDownSummary{
		DistanceBreakdown: make(map[string]model.ConversionLine),
		AttemptTrend:      c.trend(),
		ConversionTrend:   c.trend(),
	}
	for _, p := range c.plays {
		if !p.Tags.FourthDownAttempt {
			continue
		}
		wk := c.weekOf(p)
		s.Attempts++
		c.bump(s.AttemptTrend, wk, 1)
		line := s.DistanceBreakdown[distanceBucket(p.Distance)]
		line.Attempts++
		if p.FourthDownConverted {
			s.Conversions++
			c.bump(s.ConversionTrend, wk, 1)
			line.Conversions++
		}
		if c.last3[wk] {
			s.Last3Attempts++
			if p.FourthDownConverted {
				s.Last3Conversions++
			}
		}
		s.DistanceBreakdown[distanceBucket(p.Distance)] = line
		s.Plays = append(s.Plays, p)
	}
	return s
}

func (c *reportContext) middleEight() model.MiddleEightSummary {
	s := model.MiddleEightSummary{
		Games:    c.games,
		NetTrend: c.trend(),
	}
	for _, p := range c.plays {
		if !p.Tags.MiddleEight || !p.Scoring {
			continue
		}
		pts := scoringPoints(p.Play)
		if pts == 0 {
			continue
		}
		wk := c.weekOf(p)
		if c.forTeam(p.Offense) {
			s.PointsScored += pts
			c.bump(s.NetTrend, wk, pts)
			if c.last3[wk] {
				s.Last3Scored += pts
			}
		} else {
			s.PointsAllowed += pts
			c.bump(s.NetTrend, wk, -pts)
			if c.last3[wk] {
				s.Last3Allowed += pts
			}
		}
		s.ScoringPlays = append(s.ScoringPlays, p)
	}
	return s
}

// scoringPoints values a scoring play: touchdowns 7 (conversion implied),
// field goals 3. Other scoring (safeties) is not modeled.
func scoringPoints(p model.Play) int {
	text := strings.ToLower(p.PlayText + " " + p.PlayType)
	switch {
	case strings.Contains(text, "touchdown"):
		return 7
	case strings.Contains(text, "field goal") && !strings.Contains(text, "missed") &&
		!strings.Contains(text, "no good") && !strings.Contains(text, "blocked"):
		return 3
	}
	return 0
}

type zoneTag func(model.Tags) bool

func (c *reportContext) zone(name string, tag zoneTag) model.ZoneSummary {
	s := model.ZoneSummary{
		Zone:    name,
		TDTrend: c.trend(),
	}

	type driveKey struct {
		game  string
		drive int
	}
	attempts := make(map[driveKey]bool)
	scoringDrive := make(map[driveKey]bool)

	// Any scoring snap by the team marks its whole drive as scoring; zone
	// attempts are credited per unique drive with a snap in the zone.
	for _, p := range c.plays {
		if c.forTeam(p.Offense) && p.Scoring && scoringPoints(p.Play) > 0 {
			scoringDrive[driveKey{p.GameID, p.DriveNumber}] = true
		}
	}

	var ppaSum float64
	var ppaCount int
	for _, p := range c.plays {
		if !tag(p.Tags) || !c.forTeam(p.Offense) || classify.IsSpecialTeams(p.Play) {
			continue
		}
		wk := c.weekOf(p)
		s.TotalPlays++
		attempts[driveKey{p.GameID, p.DriveNumber}] = true

		if p.Scoring && strings.Contains(strings.ToLower(p.PlayText+" "+p.PlayType), "touchdown") {
			s.Touchdowns++
			c.bump(s.TDTrend, wk, 1)
		}
		if p.Turnover && attribution.CountsAsTurnover(p.Play) && c.forTeam(p.TurnoverOwner) {
			s.Turnovers++
		}
		if p.Tags.Explosive {
			s.Explosive++
		}
		switch p.Down {
		case 3:
			s.ThirdDowns.Attempts++
			if classify.Converted(p.Play) {
				s.ThirdDowns.Conversions++
			}
		case 4:
			if p.Tags.FourthDownAttempt {
				s.FourthDowns.Attempts++
				if p.FourthDownConverted {
					s.FourthDowns.Conversions++
				}
			}
		}
		if p.PPA != nil {
			ppaSum += *p.PPA
			ppaCount++
		}
		s.Plays = append(s.Plays, p)
	}

	s.DriveAttempts = len(attempts)
	keys := make([]driveKey, 0, len(attempts))
	for k := range attempts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].game != keys[j].game {
			return keys[i].game < keys[j].game
		}
		return keys[i].drive < keys[j].drive
	})
	for _, k := range keys {
		if scoringDrive[k] {
			s.ScoringDrives++
		}
	}
	if ppaCount > 0 {
		s.AvgPPA = ppaSum / float64(ppaCount)
	}
	return s
}
