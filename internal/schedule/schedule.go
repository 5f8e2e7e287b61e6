// Package schedule builds the canonical week index for a team's season.
package schedule

import (
	"sort"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// Build constructs a WeekIndex from a team's game list. maxWeek forces the
// index length (used to line two teams up on the same axis); pass 0 to use
// the highest week present in games. Weeks with no game become BYE entries.
func Build(games []model.GameInfo, maxWeek int) model.WeekIndex {
	sorted := make([]model.GameInfo, len(games))
	copy(sorted, games)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Week < sorted[j].Week })

	for _, g := range sorted {
		if g.Week > maxWeek {
			maxWeek = g.Week
		}
	}

	idx := model.WeekIndex{
		Opponents: make([]string, maxWeek),
		GameWeeks: make(map[string]int, len(sorted)),
		WeekGames: make(map[int]string, len(sorted)),
		Games:     make(map[string]model.GameInfo, len(sorted)),
	}
	for i := range idx.Opponents {
		idx.Opponents[i] = model.ByeOpponent
	}
	for _, g := range sorted {
		if g.Week < 1 || g.Week > maxWeek {
			continue
		}
		idx.Opponents[g.Week-1] = g.Opponent
		idx.GameWeeks[g.GameID] = g.Week
		idx.WeekGames[g.Week] = g.GameID
		idx.Games[g.GameID] = g
	}
	return idx
}

// MaxWeekAcross returns the highest week in any of the game lists. Used to
// build comparable indexes for side-by-side team reports.
func MaxWeekAcross(gameLists ...[]model.GameInfo) int {
	max := 0
	for _, games := range gameLists {
		for _, g := range games {
			if g.Week > max {
				max = g.Week
			}
		}
	}
	return max
}
