// Package pbp decodes raw play-by-play game files and normalizes their
// heterogeneous fields into canonical model.Play records.
package pbp

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// rawGameFile is one game JSON document: metadata plus a flat play list.
type rawGameFile struct {
	GameInfo rawGameInfo `json:"game_info"`
	Plays    []rawPlay   `json:"plays"`
}

type rawGameInfo struct {
	GameID     flexString `json:"game_id"`
	Week       flexInt    `json:"week"`
	Date       string     `json:"date"`
	HomeTeam   string     `json:"home_team"`
	AwayTeam   string     `json:"away_team"`
	Conference *bool      `json:"conference"`
	HomePower4 *bool      `json:"home_power4"`
	AwayPower4 *bool      `json:"away_power4"`
}

// rawPlay mirrors the source feed. Numeric fields arrive as numbers,
// strings, or nulls depending on provider; flexInt absorbs all three.
type rawPlay struct {
	DriveID                   flexString `json:"drive_id"`
	DriveNumber               flexInt    `json:"drive_number"`
	PlayNumber                flexInt    `json:"play_number"`
	Period                    flexPeriod `json:"period"`
	Clock                     string     `json:"clock"`
	Down                      flexInt    `json:"down"`
	Distance                  flexInt    `json:"distance"`
	YardsToGoal               *flexInt   `json:"yards_to_goal"`
	Offense                   string     `json:"offense"`
	Defense                   string     `json:"defense"`
	PlayType                  string     `json:"play_type"`
	PlayText                  string     `json:"play_text"`
	PlayClassification        string     `json:"play_classification"`
	YardsGained               flexInt    `json:"yards_gained"`
	Scoring                   bool       `json:"scoring"`
	Turnover                  bool       `json:"turnover"`
	TurnoverType              string     `json:"turnover_type"`
	PenaltyType               *string    `json:"penalty_type"`
	PenaltyDecision           string     `json:"penalty_decision"`
	DriveStartedAfterTurnover bool       `json:"drive_started_after_turnover"`
	PPA                       *float64   `json:"ppa"`
}

// flexInt unmarshals a number, a numeric string, or null (to 0).
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(int(v))
	return nil
}

// flexString unmarshals a string or a bare number as a string.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*f = flexString(s)
	return nil
}

// flexPeriod accepts either a bare period number or a nested
// {"number": N} object.
type flexPeriod int

func (f *flexPeriod) UnmarshalJSON(b []byte) error {
	var n flexInt
	if err := json.Unmarshal(b, &n); err == nil && n != 0 {
		*f = flexPeriod(n)
		return nil
	}
	var obj struct {
		Number flexInt `json:"number"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		*f = flexPeriod(obj.Number)
		return nil
	}
	*f = 0
	return nil
}

var (
	clockMinutesRe = regexp.MustCompile(`minutes=(\d+)`)
	clockSecondsRe = regexp.MustCompile(`seconds=(\d+)`)
	clockColonRe   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseClock converts a source clock string into seconds remaining in the
// period. Accepts "seconds=S minutes=M" (either key order) and "MM:SS".
// Unparseable input yields 0; it never fails.
func ParseClock(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if m := clockColonRe.FindStringSubmatch(s); m != nil {
		min, _ := strconv.Atoi(m[1])
		sec, _ := strconv.Atoi(m[2])
		return min*60 + sec
	}
	total := 0
	if m := clockMinutesRe.FindStringSubmatch(s); m != nil {
		v, _ := strconv.Atoi(m[1])
		total += v * 60
	}
	if m := clockSecondsRe.FindStringSubmatch(s); m != nil {
		v, _ := strconv.Atoi(m[1])
		total += v
	}
	return total
}

// parseTurnoverType maps the source's free-text turnover_type field.
func parseTurnoverType(s string) model.TurnoverType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interception":
		return model.TurnoverInterception
	case "fumble":
		return model.TurnoverFumble
	case "downs":
		return model.TurnoverDowns
	default:
		return model.TurnoverNone
	}
}

func parsePenaltyDecision(s string) model.PenaltyDecision {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accepted":
		return model.DecisionAccepted
	case "declined":
		return model.DecisionDeclined
	case "offsetting":
		return model.DecisionOffsetting
	default:
		return model.DecisionNone
	}
}

// Normalize converts a raw play into the canonical Play, stamping game
// context onto it. Missing numeric fields default to documented sentinels
// (down/distance 0, yards_to_goal 100) so no nil ever reaches arithmetic.
func (rp *rawPlay) normalize(g model.GameInfo) model.Play {
	ytg := 100
	if rp.YardsToGoal != nil {
		ytg = int(*rp.YardsToGoal)
		if ytg < 0 {
			ytg = 0
		} else if ytg > 100 {
			ytg = 100
		}
	}

	penaltyType := ""
	if rp.PenaltyType != nil {
		penaltyType = strings.TrimSpace(*rp.PenaltyType)
	}

	return model.Play{
		GameID:                    g.GameID,
		DriveID:                   string(rp.DriveID),
		DriveNumber:               int(rp.DriveNumber),
		PlayNumber:                int(rp.PlayNumber),
		Period:                    int(rp.Period),
		ClockSeconds:              ParseClock(rp.Clock),
		Down:                      int(rp.Down),
		Distance:                  int(rp.Distance),
		YardsToGoal:               ytg,
		Offense:                   strings.TrimSpace(rp.Offense),
		Defense:                   strings.TrimSpace(rp.Defense),
		PlayType:                  strings.TrimSpace(rp.PlayType),
		PlayText:                  rp.PlayText,
		PlayClassification:        strings.TrimSpace(rp.PlayClassification),
		YardsGained:               int(rp.YardsGained),
		Scoring:                   rp.Scoring,
		Turnover:                  rp.Turnover,
		TurnoverType:              parseTurnoverType(rp.TurnoverType),
		PenaltyType:               penaltyType,
		PenaltyDecision:           parsePenaltyDecision(rp.PenaltyDecision),
		DriveStartedAfterTurnover: rp.DriveStartedAfterTurnover,
		Week:                      g.Week,
		Opponent:                  g.Opponent,
		IsConference:              g.IsConference,
		IsPower4Opponent:          g.IsPower4Opponent,
		PPA:                       rp.PPA,
	}
}
