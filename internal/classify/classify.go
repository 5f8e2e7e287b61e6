// Package classify tags normalized plays with situational labels. Every
// function here is pure: a ClassifiedPlay is derived from (Play, team) and
// nothing is ever written back onto the source play.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gridstats/go-cfb-metrics/internal/attribution"
	"github.com/gridstats/go-cfb-metrics/internal/model"
)

const (
	explosiveRunYards  = 15
	explosivePassYards = 20

	explosiveKickReturnYards = 35
	explosivePuntReturnYards = 20

	tightRedZoneYards = 10
	redZoneYards      = 20
	greenZoneYards    = 30

	// Middle eight: last 4:00 of Q2, first 4:00 of Q3 (clock counts down
	// from 15:00, so "first 4 minutes" means >= 11:00 remaining).
	middleEightQ2Clock = 4 * 60
	middleEightQ3Clock = 11 * 60
)

// Classifier tags plays for one team under analysis.
type Classifier struct {
	resolver *attribution.Resolver
}

// New builds a Classifier sharing the given attribution resolver.
func New(resolver *attribution.Resolver) *Classifier {
	if resolver == nil {
		resolver = attribution.NewResolver(nil)
	}
	return &Classifier{resolver: resolver}
}

// Classify derives the full ClassifiedPlay for a play, from the
// perspective of team.
func (c *Classifier) Classify(p model.Play, team string) model.ClassifiedPlay {
	cp := model.ClassifiedPlay{Play: p}

	cp.Tags.TightRedZone = p.YardsToGoal <= tightRedZoneYards
	cp.Tags.RedZone = p.YardsToGoal <= redZoneYards
	cp.Tags.GreenZone = p.YardsToGoal <= greenZoneYards
	cp.Tags.MiddleEight = IsMiddleEight(p)

	cp.Tags.Explosive = isExplosive(p, team)

	if ry, isReturn := ReturnYards(p); isReturn {
		cp.ReturnYards = ry
		cp.Tags.SpecialTeamsExplosive = isExplosiveReturn(p, ry)
	}

	if IsFourthDownAttempt(p, team) {
		cp.Tags.FourthDownAttempt = true
		cp.FourthDownConverted = Converted(p)
	}

	if p.HasPenalty() {
		cp.CommittingTeam = c.resolver.ResolvePenalty(p)
		cp.PenaltyType = attribution.RelabelHolding(p, cp.CommittingTeam)
	}
	if p.Turnover {
		cp.TurnoverOwner = attribution.ResolveTurnoverOwner(p, nil)
	}
	return cp
}

// ClassifyAll classifies a play slice in order, resolving punt-fumble
// turnover ownership against each play's successor within the same game.
func (c *Classifier) ClassifyAll(plays []model.Play, team string) []model.ClassifiedPlay {
	out := make([]model.ClassifiedPlay, 0, len(plays))
	for i, p := range plays {
		cp := c.Classify(p, team)
		if p.Turnover {
			cp.TurnoverOwner = attribution.ResolveTurnoverOwner(p, nextInGame(plays, i))
		}
		out = append(out, cp)
	}
	return out
}

// nextInGame finds the play following plays[i] in the same game: the next
// play of the same drive, or the first play of the next drive.
func nextInGame(plays []model.Play, i int) *model.Play {
	cur := plays[i]
	for j := range plays {
		p := &plays[j]
		if p.GameID != cur.GameID {
			continue
		}
		if p.DriveNumber == cur.DriveNumber && p.PlayNumber > cur.PlayNumber {
			return p
		}
		if p.DriveNumber == cur.DriveNumber+1 {
			return p
		}
	}
	return nil
}

// IsSpecialTeams reports whether a play belongs to a kicking unit, by the
// feed's classification marker or by play type.
func IsSpecialTeams(p model.Play) bool {
	if p.PlayClassification == "special_teams" {
		return true
	}
	pt := strings.ToLower(p.PlayType)
	for _, kw := range []string{"kickoff", "punt", "field goal", "extra point"} {
		if strings.Contains(pt, kw) {
			return true
		}
	}
	return false
}

// isExplosive: offensive snap by team, not special teams, run >= 15 yards
// or pass-family play >= 20 yards.
func isExplosive(p model.Play, team string) bool {
	if !strings.EqualFold(p.Offense, team) || IsSpecialTeams(p) {
		return false
	}
	pt := strings.ToLower(p.PlayType)
	if strings.Contains(pt, "rush") || strings.Contains(pt, "run") {
		return p.YardsGained >= explosiveRunYards
	}
	if strings.Contains(pt, "pass") || strings.Contains(pt, "reception") || strings.Contains(pt, "sack") {
		return p.YardsGained >= explosivePassYards
	}
	return false
}

var returnYardsRe = regexp.MustCompile(`(?i)return[s]? for (?:no gain|(\d+) (?:yd|yard))`)

// ReturnYards parses actual return yardage from play text for kick/punt
// return plays. yards_gained is deliberately ignored: on returns it can
// include the kick distance. The second result is false for non-return
// plays; unparseable return text yields 0.
func ReturnYards(p model.Play) (int, bool) {
	pt := strings.ToLower(p.PlayType)
	text := strings.ToLower(p.PlayText)
	isKick := strings.Contains(pt, "kickoff") || strings.Contains(text, "kickoff") ||
		strings.Contains(pt, "punt") || strings.Contains(text, "punt")
	isReturn := strings.Contains(pt, "return") || strings.Contains(text, "return")
	if !isKick || !isReturn {
		return 0, false
	}
	m := returnYardsRe.FindStringSubmatch(p.PlayText)
	if m == nil {
		return 0, true
	}
	if m[1] == "" {
		return 0, true // "no gain"
	}
	v, _ := strconv.Atoi(m[1])
	return v, true
}

func isExplosiveReturn(p model.Play, returnYards int) bool {
	pt := strings.ToLower(p.PlayType)
	text := strings.ToLower(p.PlayText)
	if strings.Contains(pt, "kickoff") || strings.Contains(text, "kickoff") {
		return returnYards >= explosiveKickReturnYards
	}
	if strings.Contains(pt, "punt") || strings.Contains(text, "punt") {
		return returnYards >= explosivePuntReturnYards
	}
	return false
}

// IsMiddleEight reports whether a play falls in the middle eight: Q2 with
// at most 4:00 remaining, or Q3 with at least 11:00 remaining.
func IsMiddleEight(p model.Play) bool {
	switch p.Period {
	case 2:
		return p.ClockSeconds <= middleEightQ2Clock
	case 3:
		return p.ClockSeconds >= middleEightQ3Clock
	default:
		return false
	}
}

// IsFourthDownAttempt reports whether a play is a 4th-down "go" by team:
// punts, field goals, timeouts, kneel-downs, and penalty no-plays are not
// attempts.
func IsFourthDownAttempt(p model.Play, team string) bool {
	if p.Down != 4 || !strings.EqualFold(p.Offense, team) {
		return false
	}
	pt := strings.ToLower(p.PlayType)
	if strings.Contains(pt, "punt") || strings.Contains(pt, "field goal") || strings.Contains(pt, "timeout") {
		return false
	}
	text := strings.ToLower(p.PlayText)
	if strings.Contains(text, "knee") {
		return false
	}
	if strings.Contains(pt, "penalty") && strings.Contains(text, "no play") {
		return false
	}
	return true
}

// Converted reports whether a play gained the line to gain: explicit
// first-down/touchdown text, or yardage >= distance.
func Converted(p model.Play) bool {
	text := strings.ToLower(p.PlayText)
	if strings.Contains(text, "1st down") || strings.Contains(text, "first down") {
		return true
	}
	if strings.Contains(text, "touchdown") || strings.Contains(strings.ToLower(p.PlayType), "touchdown") {
		return true
	}
	return p.YardsGained >= p.Distance
}

// IsReturnPlay reports whether a special-teams play is a kick or punt
// return. On returns the returning team is the play's defense.
func IsReturnPlay(p model.Play) bool {
	_, isReturn := ReturnYards(p)
	return isReturn
}

// ReturningTeamIs reports whether team is the returning side of a return
// play (the defense field, not offense).
func ReturningTeamIs(p model.Play, team string) bool {
	return strings.EqualFold(p.Defense, team)
}
