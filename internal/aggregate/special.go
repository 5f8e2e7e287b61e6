package aggregate

import (
	"strings"

	"github.com/gridstats/go-cfb-metrics/internal/attribution"
	"github.com/gridstats/go-cfb-metrics/internal/classify"
	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// specialTeams summarizes the kicking units. On return plays the feed's
// offense field is the kicking team, so the returning side is the play's
// defense; scoring and explosive attribution follow that inversion.
func (c *reportContext) specialTeams() model.SpecialTeamsSummary {
	s := model.SpecialTeamsSummary{ExplosiveTrend: c.trend()}

	badFor := make(map[driveRef]bool)
	badAgainst := make(map[driveRef]bool)

	for _, p := range c.plays {
		if !classify.IsSpecialTeams(p.Play) {
			continue
		}
		s.TotalPlays++
		s.Plays = append(s.Plays, p)
		wk := c.weekOf(p)
		k := driveRef{p.GameID, p.DriveNumber}
		returning := classify.ReturningTeamIs(p.Play, c.team)

		if p.Tags.SpecialTeamsExplosive {
			if returning {
				s.Explosive++
				c.bump(s.ExplosiveTrend, wk, 1)
			} else {
				s.ExplosiveAllowed++
				badFor[k] = true
			}
		}

		if classify.IsReturnPlay(p.Play) && p.Scoring &&
			strings.Contains(strings.ToLower(p.PlayText), "touchdown") {
			if returning {
				s.TDsScored++
			} else {
				s.TDsAllowed++
			}
		}

		if isPuntBlock(p.Play) {
			// The blocking side is the return team.
			if returning {
				s.PuntBlocks++
				badAgainst[k] = true
			} else {
				s.PuntBlocksAllowed++
				badFor[k] = true
			}
		}

		if p.Turnover && attribution.CountsAsTurnover(p.Play) {
			if c.forTeam(p.TurnoverOwner) {
				badFor[k] = true
			} else if p.TurnoverOwner != model.UnknownTeam && p.TurnoverOwner != "" {
				badAgainst[k] = true
			}
		}
	}

	s.BadResults = len(badFor)
	s.BadResultsAllowed = len(badAgainst)
	return s
}

// isPuntBlock matches blocked punts by text or type, ignoring
// illegal-block penalties that merely mention "block".
func isPuntBlock(p model.Play) bool {
	if strings.Contains(strings.ToLower(p.PenaltyType), "illegal block") {
		return false
	}
	text := strings.ToLower(p.PlayText + " " + p.PlayType)
	return strings.Contains(text, "blocked punt") || strings.Contains(text, "punt blocked")
}
