// Package filter narrows play sets by opponent class and recency. Filters
// select whole games: a play either belongs to a matching game or it does
// not, so every summary recomputed from a filtered set stays internally
// consistent.
package filter

import (
	"sort"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// Mode selects an opponent-class filter. The class filters are mutually
// exclusive by construction: a game is conference or non-conference, never
// both, and a game with unknown enrichment matches neither.
type Mode int

const (
	All Mode = iota
	Conference
	NonConference
	Power4
)

func (m Mode) String() string {
	switch m {
	case Conference:
		return "conference"
	case NonConference:
		return "non-conference"
	case Power4:
		return "power4"
	default:
		return "all"
	}
}

// Spec is a full filter request.
type Spec struct {
	Mode       Mode
	LastThree  bool
	MinimumPPA *float64 // plays below this PPA are dropped; nil = no floor
}

// IsDefault reports whether the spec selects everything.
func (s Spec) IsDefault() bool {
	return s.Mode == All && !s.LastThree && s.MinimumPPA == nil
}

// matchesMode applies the opponent-class test to one play's enrichment.
// Unknown enrichment (nil) never matches a class filter.
func matchesMode(p model.Play, m Mode) bool {
	switch m {
	case Conference:
		return p.IsConference != nil && *p.IsConference
	case NonConference:
		return p.IsConference != nil && !*p.IsConference
	case Power4:
		return p.IsPower4Opponent != nil && *p.IsPower4Opponent
	default:
		return true
	}
}

// Apply returns the plays matching spec, preserving input order. The
// last-three restriction keeps the 3 most recent distinct games (by week)
// among those that survive the class filter.
func Apply(plays []model.Play, spec Spec) []model.Play {
	out := make([]model.Play, 0, len(plays))
	for _, p := range plays {
		if !matchesMode(p, spec.Mode) {
			continue
		}
		if spec.MinimumPPA != nil && (p.PPA == nil || *p.PPA < *spec.MinimumPPA) {
			continue
		}
		out = append(out, p)
	}
	if spec.LastThree {
		out = lastNGames(out, 3)
	}
	return out
}

// Games returns the game lists matching the spec's class filter, so week
// indexes can be rebuilt over the same games the plays came from.
func Games(games []model.GameInfo, spec Spec) []model.GameInfo {
	out := make([]model.GameInfo, 0, len(games))
	for _, g := range games {
		probe := model.Play{IsConference: g.IsConference, IsPower4Opponent: g.IsPower4Opponent}
		if !matchesMode(probe, spec.Mode) {
			continue
		}
		out = append(out, g)
	}
	if spec.LastThree && len(out) > 3 {
		sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
		out = out[len(out)-3:]
	}
	return out
}

func lastNGames(plays []model.Play, n int) []model.Play {
	weekByGame := make(map[string]int)
	for _, p := range plays {
		if p.Week > weekByGame[p.GameID] {
			weekByGame[p.GameID] = p.Week
		}
	}
	type gw struct {
		id   string
		week int
	}
	games := make([]gw, 0, len(weekByGame))
	for id, wk := range weekByGame {
		games = append(games, gw{id, wk})
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].week != games[j].week {
			return games[i].week < games[j].week
		}
		return games[i].id < games[j].id
	})
	if len(games) > n {
		games = games[len(games)-n:]
	}
	keep := make(map[string]bool, len(games))
	for _, g := range games {
		keep[g.id] = true
	}
	out := plays[:0]
	for _, p := range plays {
		if keep[p.GameID] {
			out = append(out, p)
		}
	}
	return out
}
