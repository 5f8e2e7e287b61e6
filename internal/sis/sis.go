// Package sis parses the situational receiving feed and aggregates it into
// ReceivingSummary values aligned to a team's week index. The feed is a
// separate export keyed by team, covering third-down and red-zone
// receiving only.
package sis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/gridstats/go-cfb-metrics/internal/filter"
	"github.com/gridstats/go-cfb-metrics/internal/model"
)

const (
	SituationThirdDown = "3rd_down"
	SituationRedZone   = "redzone"
)

// WeekLine is one team-week row of a situation.
type WeekLine struct {
	Week     int
	Opponent string
	Line     model.ReceivingLine
}

// PlayerLine is one per-player season row of a situation.
type PlayerLine struct {
	Name string
	Line model.ReceivingLine
}

// Situation is one situation's worth of feed rows for a team.
type Situation struct {
	Name    string
	Total   model.ReceivingLine
	Weeks   []WeekLine
	Players []PlayerLine
}

// TeamFeed is the full feed payload for one team.
type TeamFeed struct {
	Team      string
	ThirdDown Situation
	RedZone   Situation
}

type rawLine struct {
	Opponent   string `json:"opponent"`
	Targets    int    `json:"targets"`
	Receptions int    `json:"receptions"`
	FirstDowns int    `json:"first_downs"`
	Touchdowns int    `json:"touchdowns"`
	Yards      int    `json:"yards"`
}

func (r rawLine) line() model.ReceivingLine {
	return model.ReceivingLine{
		Targets:    r.Targets,
		Receptions: r.Receptions,
		FirstDowns: r.FirstDowns,
		Touchdowns: r.Touchdowns,
		Yards:      r.Yards,
	}
}

type rawSituation struct {
	Total   rawLine            `json:"total"`
	ByWeek  map[string]rawLine `json:"by_week"`
	Players map[string]rawLine `json:"players"`
}

type rawFeed struct {
	Data struct {
		Task9 map[string]map[string]rawSituation `json:"task_9"`
	} `json:"data"`
}

// Parse decodes the feed and returns one TeamFeed per team, sorted by team
// name.
func Parse(data []byte) ([]TeamFeed, error) {
	var raw rawFeed
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding receiving feed: %w", err)
	}
	if len(raw.Data.Task9) == 0 {
		return nil, fmt.Errorf("receiving feed holds no teams")
	}

	teams := make([]string, 0, len(raw.Data.Task9))
	for t := range raw.Data.Task9 {
		teams = append(teams, t)
	}
	sort.Strings(teams)

	out := make([]TeamFeed, 0, len(teams))
	for _, team := range teams {
		situations := raw.Data.Task9[team]
		out = append(out, TeamFeed{
			Team:      team,
			ThirdDown: buildSituation(SituationThirdDown, situations[SituationThirdDown]),
			RedZone:   buildSituation(SituationRedZone, situations[SituationRedZone]),
		})
	}
	return out, nil
}

func buildSituation(name string, raw rawSituation) Situation {
	s := Situation{Name: name, Total: raw.Total.line()}
	for wkStr, rl := range raw.ByWeek {
		wk, err := strconv.Atoi(wkStr)
		if err != nil || wk < 1 {
			continue
		}
		s.Weeks = append(s.Weeks, WeekLine{Week: wk, Opponent: rl.Opponent, Line: rl.line()})
	}
	sort.Slice(s.Weeks, func(i, j int) bool { return s.Weeks[i].Week < s.Weeks[j].Week })

	for name, rl := range raw.Players {
		s.Players = append(s.Players, PlayerLine{Name: name, Line: rl.line()})
	}
	sort.Slice(s.Players, func(i, j int) bool {
		if s.Players[i].Line.Targets != s.Players[j].Line.Targets {
			return s.Players[i].Line.Targets > s.Players[j].Line.Targets
		}
		return s.Players[i].Name < s.Players[j].Name
	})
	return s
}

// Summarize aggregates one situation against a week index under a filter.
// Feed weeks map to games through the index; under an active class filter
// a week whose game is unknown, or whose enrichment is missing, is
// excluded. Last-3 means the 3 most recent surviving weeks with data.
func Summarize(sit Situation, weeks model.WeekIndex, spec filter.Spec) *model.ReceivingSummary {
	s := &model.ReceivingSummary{
		Situation:   sit.Name,
		TargetTrend: make([]int, weeks.MaxWeek()),
	}

	var kept []WeekLine
	for _, wl := range sit.Weeks {
		if !weekMatches(wl.Week, weeks, spec) {
			continue
		}
		kept = append(kept, wl)
	}
	if spec.LastThree && len(kept) > 3 {
		kept = kept[len(kept)-3:]
	}

	for _, wl := range kept {
		s.Total = s.Total.Add(wl.Line)
		if wl.Week >= 1 && wl.Week <= len(s.TargetTrend) {
			s.TargetTrend[wl.Week-1] = wl.Line.Targets
		}
	}
	last3 := kept
	if len(last3) > 3 {
		last3 = last3[len(last3)-3:]
	}
	for _, wl := range last3 {
		s.Last3 = s.Last3.Add(wl.Line)
	}

	// Player lines are season totals; they only accompany unfiltered
	// aggregation (the feed has no per-player weekly split to refilter).
	if spec.IsDefault() {
		for _, pl := range sit.Players {
			s.Players = append(s.Players, model.PlayerReceiving{Name: pl.Name, Line: pl.Line})
		}
	}
	return s
}

func weekMatches(week int, weeks model.WeekIndex, spec filter.Spec) bool {
	gameID, ok := weeks.WeekGames[week]
	if !ok {
		// A week outside the stored schedule survives only when no class
		// filter is active.
		return spec.Mode == filter.All
	}
	g := weeks.Games[gameID]
	probe := model.Play{IsConference: g.IsConference, IsPower4Opponent: g.IsPower4Opponent}
	return len(filter.Apply([]model.Play{probe}, filter.Spec{Mode: spec.Mode})) == 1
}
