// Package attribution decides which team is responsible for a penalty or a
// turnover when the feed's structured fields are missing or ambiguous. The
// resolution order is fixed: explicit text marker, opponent-exclusion
// check, penalty-category inference, holding disambiguation, exclusion.
// The resolver never fails; plays it cannot place resolve to
// model.UnknownTeam and drop out of team totals only.
package attribution

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// Side is the side of the ball a penalty category belongs to.
type Side int

const (
	SideUnknown Side = iota
	SideOffense
	SideDefense
	SideEither
	SideSpecialTeams
)

var offensePenalties = []string{
	"false start",
	"delay of game",
	"offensive holding",
	"illegal formation",
	"illegal shift",
	"illegal motion",
	"intentional grounding",
	"offensive pass interference",
	"ineligible downfield",
	"chop block",
}

var defensePenalties = []string{
	"pass interference",
	"defensive holding",
	"offside",
	"offsides",
	"encroachment",
	"neutral zone infraction",
	"roughing the passer",
	"horse collar",
	"horse-collar",
	"targeting",
	"illegal contact",
	"face mask",
	"facemask",
	"too many men",
}

var eitherSidePenalties = []string{
	"unsportsmanlike conduct",
	"personal foul",
	"unnecessary roughness",
	"sideline interference",
	"substitution infraction",
}

var specialTeamsPenalties = []string{
	"illegal block",
	"kick catching interference",
	"kick catch interference",
	"roughing the kicker",
	"roughing the punter",
	"running into the kicker",
	"illegal touching of a kick",
	"illegal fair catch signal",
}

// PenaltySide classifies a penalty type by side of ball. Order matters:
// "offensive pass interference" must win over "pass interference", so the
// offense list is checked first.
func PenaltySide(penaltyType string) Side {
	pt := strings.ToLower(penaltyType)
	for _, p := range offensePenalties {
		if strings.Contains(pt, p) {
			return SideOffense
		}
	}
	for _, p := range specialTeamsPenalties {
		if strings.Contains(pt, p) {
			return SideSpecialTeams
		}
	}
	for _, p := range defensePenalties {
		if strings.Contains(pt, p) {
			return SideDefense
		}
	}
	for _, p := range eitherSidePenalties {
		if strings.Contains(pt, p) {
			return SideEither
		}
	}
	return SideUnknown
}

// Resolver attributes penalties and turnovers using the team marker table.
type Resolver struct {
	table TeamTable
}

// NewResolver builds a Resolver over the given marker table. A nil table
// uses the defaults.
func NewResolver(table TeamTable) *Resolver {
	if table == nil {
		table = DefaultTeamTable()
	}
	return &Resolver{table: table}
}

// Excluded reports whether a penalty play is out of "accepted" counts and
// yardage totals: offsetting or declined, by structured field or by text.
// Excluded plays remain visible in raw play lists.
func Excluded(p model.Play) bool {
	switch p.PenaltyDecision {
	case model.DecisionDeclined, model.DecisionOffsetting:
		return true
	}
	upper := strings.ToUpper(p.PlayText)
	return strings.Contains(upper, "OFFSETTING") || strings.Contains(upper, "DECLINED")
}

// teamMarkedInPenalty reports whether the play text carries an explicit
// "<team> PENALTY" or "PENALTY <team>" marker. Requiring adjacency to the
// word "penalty" keeps abbreviations inside field-position strings (e.g.
// "at the WASH 25") from triggering a match.
func (r *Resolver) teamMarkedInPenalty(text, team string) bool {
	lower := strings.ToLower(text)
	for _, marker := range r.table.Markers(team) {
		m := strings.ToLower(marker)
		if strings.Contains(lower, "penalty "+m) || strings.Contains(lower, m+" penalty") {
			return true
		}
	}
	return false
}

// ResolvePenalty determines the committing team for a penalty play.
// Returns model.UnknownTeam when neither marker nor category inference can
// place it.
func (r *Resolver) ResolvePenalty(p model.Play) string {
	if !p.HasPenalty() {
		return ""
	}

	// Steps 1+2: explicit marker with opponent exclusion. Both teams are
	// checked; a double match is ambiguous and falls through to category
	// inference rather than guessing.
	offMarked := r.teamMarkedInPenalty(p.PlayText, p.Offense)
	defMarked := r.teamMarkedInPenalty(p.PlayText, p.Defense)
	if offMarked != defMarked {
		if offMarked {
			return p.Offense
		}
		return p.Defense
	}

	// Step 3: side-of-ball inference from the penalty category.
	switch PenaltySide(p.PenaltyType) {
	case SideOffense:
		return p.Offense
	case SideDefense:
		return p.Defense
	}

	// Bare "holding" with no qualifier is handled by RelabelHolding once a
	// side is known; without a marker there is nothing to anchor on.
	return model.UnknownTeam
}

// RelabelHolding rewrites an unqualified "Holding" penalty type to
// Offensive/Defensive Holding based on which side the committing team was
// on for this play. Other penalty types pass through unchanged.
func RelabelHolding(p model.Play, committingTeam string) string {
	pt := strings.ToLower(p.PenaltyType)
	if pt != "holding" && pt != "penalty (holding)" {
		return p.PenaltyType
	}
	switch committingTeam {
	case p.Offense:
		return "Offensive Holding"
	case p.Defense:
		return "Defensive Holding"
	default:
		return p.PenaltyType
	}
}

var penaltyYardPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\((\d+)\s*yard`),
	regexp.MustCompile(`(\d+)\s*yards?\s+from`),
}

var yardNearPenaltyRe = regexp.MustCompile(`(\d+)\s*yard`)

// PenaltyYards extracts the assessed penalty yardage from play text, never
// from yards_gained (which can include return yardage). Falls back to
// standard yardages by penalty type, then 0.
func PenaltyYards(text, penaltyType string) int {
	lower := strings.ToLower(text)
	for _, re := range penaltyYardPatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			v, _ := strconv.Atoi(m[1])
			return v
		}
	}
	if idx := strings.Index(lower, "penalty"); idx >= 0 {
		window := lower[idx:]
		if len(window) > 50 {
			window = window[:50]
		}
		if m := yardNearPenaltyRe.FindStringSubmatch(window); m != nil {
			v, _ := strconv.Atoi(m[1])
			return v
		}
	}

	pt := strings.ToLower(penaltyType)
	switch {
	case strings.Contains(pt, "personal foul"),
		strings.Contains(pt, "unsportsmanlike"),
		strings.Contains(pt, "roughing"),
		strings.Contains(pt, "pass interference"):
		return 15
	case strings.Contains(pt, "holding"),
		strings.Contains(pt, "illegal block"):
		return 10
	case strings.Contains(pt, "false start"),
		strings.Contains(pt, "offside"),
		strings.Contains(pt, "delay of game"),
		strings.Contains(pt, "illegal formation"),
		strings.Contains(pt, "illegal shift"):
		return 5
	}
	return 0
}

// CountsAsTurnover reports whether a play counts for post-turnover
// analysis: interceptions and lost fumbles only. Turnovers on downs,
// no-play text, and penalty plays without a structured interception/fumble
// type are excluded.
func CountsAsTurnover(p model.Play) bool {
	if !p.Turnover {
		return false
	}
	upperText := strings.ToUpper(p.PlayText)
	if strings.Contains(upperText, "NO PLAY") {
		return false
	}
	if p.TurnoverType == model.TurnoverDowns {
		return false
	}
	upperType := strings.ToUpper(p.PlayType)
	if strings.Contains(upperType, "PENALTY") {
		// A penalty play can carry a real turnover (pick then flag), but
		// only the structured field is trusted here.
		return p.TurnoverType == model.TurnoverInterception || p.TurnoverType == model.TurnoverFumble
	}
	if strings.Contains(upperType, "TURNOVER ON DOWNS") || strings.Contains(upperType, "DOWNS") {
		return false
	}

	isInterception := strings.Contains(upperType, "INTERCEPTION") ||
		p.TurnoverType == model.TurnoverInterception
	isFumble := strings.Contains(upperType, "FUMBLE") ||
		p.TurnoverType == model.TurnoverFumble

	if isFumble && !isInterception {
		return fumbleLost(p)
	}
	return isInterception || isFumble
}

// fumbleLost reports whether a fumble actually changed possession. A
// "(Own)" qualifier in play_type means the offense recovered, unless the
// text contradicts it by naming the defense as recoverer.
func fumbleLost(p model.Play) bool {
	upperType := strings.ToUpper(p.PlayType)
	if !strings.Contains(upperType, "(OWN)") {
		return true
	}
	upperText := strings.ToUpper(p.PlayText)
	def := strings.ToUpper(p.Defense)
	if def == "" {
		return false
	}
	recoveredBy := []string{"RECOVERED BY " + def}
	if len(def) >= 3 {
		recoveredBy = append(recoveredBy, "RECOVERED BY "+def[:3])
	}
	for _, pattern := range recoveredBy {
		if strings.Contains(upperText, pattern) {
			return true
		}
	}
	return false
}

// ResolveTurnoverOwner determines which team is charged with a turnover.
// nextPlay is the play that followed the turnover (nil when none exists):
// on a muffed punt the receiving team (the defense on the punt) owns the
// fumble unless the next snap shows it kept possession.
func ResolveTurnoverOwner(p model.Play, nextPlay *model.Play) string {
	if !p.Turnover {
		return ""
	}
	upperType := strings.ToUpper(p.PlayType)
	upperText := strings.ToUpper(p.PlayText)

	isPuntFumble := strings.Contains(upperType, "PUNT") &&
		(strings.Contains(upperText, "FUMBLE") || strings.Contains(upperText, "FUMBLED") ||
			strings.Contains(upperType, "FUMBLE"))
	if isPuntFumble {
		receiving := p.Defense
		if nextPlay != nil {
			if strings.EqualFold(nextPlay.Offense, receiving) {
				// Receiving team kept the ball, so the kicking side is the
				// one that lost it (it recovered nothing).
				return p.Offense
			}
			return receiving
		}
		return receiving
	}

	if p.Offense == "" {
		return model.UnknownTeam
	}
	return p.Offense
}
