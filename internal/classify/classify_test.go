package classify

import (
	"testing"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

const team = "Washington"

// offPlay builds a play with Washington on offense.
func offPlay(playType string, yards int) model.Play {
	return model.Play{
		Offense:    team,
		Defense:    "Wisconsin",
		PlayType:   playType,
		YardsGained: yards,
	}
}

// ---- Explosive tests ----

func TestExplosiveThresholds(t *testing.T) {
	c := New(nil)
	cases := []struct {
		name string
		play model.Play
		want bool
	}{
		{"run at 15", offPlay("Rush", 15), true},
		{"run at 14", offPlay("Rush", 14), false},
		{"pass at 20", offPlay("Pass Reception", 20), true},
		{"pass at 19", offPlay("Pass Reception", 19), false},
		{"pass at 15 is not explosive", offPlay("Pass Reception", 15), false},
		{"sack family uses pass threshold", offPlay("Sack", 20), true},
		{"opponent snap never explosive", model.Play{Offense: "Wisconsin", Defense: team, PlayType: "Rush", YardsGained: 60}, false},
		{"special teams excluded", model.Play{Offense: team, PlayType: "Kickoff Return", YardsGained: 60}, false},
	}
	for _, tc := range cases {
		got := c.Classify(tc.play, team)
		if got.Tags.Explosive != tc.want {
			t.Errorf("%s: Explosive = %v, want %v", tc.name, got.Tags.Explosive, tc.want)
		}
	}
}

// ---- Return yardage tests ----

func TestReturnYards(t *testing.T) {
	cases := []struct {
		name     string
		play     model.Play
		want     int
		isReturn bool
	}{
		{
			"kickoff return",
			model.Play{PlayType: "Kickoff Return", PlayText: "kickoff for 60 yds, return for 42 yds to the WASH 45"},
			42, true,
		},
		{
			"punt return plural",
			model.Play{PlayType: "Punt", PlayText: "punt for 44 yds, returns for 12 yards to the 30"},
			12, true,
		},
		{
			"no gain",
			model.Play{PlayType: "Punt", PlayText: "punt, return for no gain"},
			0, true,
		},
		{
			"return text missing yardage",
			model.Play{PlayType: "Kickoff Return", PlayText: "kickoff returned, tackled immediately"},
			0, true,
		},
		{
			"not a return",
			model.Play{PlayType: "Rush", PlayText: "rush for 8 yds"},
			0, false,
		},
		{
			"kick without return marker",
			model.Play{PlayType: "Punt", PlayText: "punt for 44 yds, fair catch"},
			0, false,
		},
	}
	for _, tc := range cases {
		got, isReturn := ReturnYards(tc.play)
		if got != tc.want || isReturn != tc.isReturn {
			t.Errorf("%s: ReturnYards = (%d, %v), want (%d, %v)", tc.name, got, isReturn, tc.want, tc.isReturn)
		}
	}
}

func TestSpecialTeamsExplosive(t *testing.T) {
	c := New(nil)
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"kick return 35", "kickoff for 61 yds, return for 35 yds", true},
		{"kick return 34", "kickoff for 61 yds, return for 34 yds", false},
		{"punt return 20", "punt for 40 yds, return for 20 yds", true},
		{"punt return 19", "punt for 40 yds, return for 19 yds", false},
	}
	for _, tc := range cases {
		pt := "Punt"
		if tc.name[0] == 'k' {
			pt = "Kickoff Return"
		}
		p := model.Play{PlayType: pt, PlayText: tc.text}
		got := c.Classify(p, team)
		if got.Tags.SpecialTeamsExplosive != tc.want {
			t.Errorf("%s: SpecialTeamsExplosive = %v, want %v", tc.name, got.Tags.SpecialTeamsExplosive, tc.want)
		}
	}
}

// A kick return that gains 60 from yards_gained but only 10 by text must
// not be explosive: the text is authoritative on returns.
func TestReturnAttributedToReceivingTeam(t *testing.T) {
	c := New(nil)
	p := model.Play{
		Offense:     "Oregon",
		Defense:     "Rutgers",
		PlayType:    "Punt Return",
		PlayText:    "punt for 50 yds, returns for 42 yds to the ORE 8",
		YardsGained: 50,
	}
	got := c.Classify(p, "Rutgers")
	if !got.Tags.SpecialTeamsExplosive {
		t.Error("SpecialTeamsExplosive = false, want true")
	}
	if got.ReturnYards != 42 {
		t.Errorf("ReturnYards = %d, want 42", got.ReturnYards)
	}
	if !ReturningTeamIs(p, "Rutgers") {
		t.Error("ReturningTeamIs(Rutgers) = false, want true")
	}
	if ReturningTeamIs(p, "Oregon") {
		t.Error("ReturningTeamIs(Oregon) = true, want false")
	}
}

func TestReturnYardsIgnoreYardsGained(t *testing.T) {
	c := New(nil)
	p := model.Play{
		PlayType:    "Kickoff Return",
		PlayText:    "kickoff for 50 yds, return for 10 yds",
		YardsGained: 60,
	}
	got := c.Classify(p, team)
	if got.ReturnYards != 10 {
		t.Errorf("ReturnYards = %d, want 10", got.ReturnYards)
	}
	if got.Tags.SpecialTeamsExplosive {
		t.Error("SpecialTeamsExplosive = true, want false")
	}
}

// ---- Zone tests ----

func TestZoneNesting(t *testing.T) {
	c := New(nil)
	cases := []struct {
		yardsToGoal          int
		tight, red, green bool
	}{
		{5, true, true, true},
		{10, true, true, true},
		{11, false, true, true},
		{20, false, true, true},
		{21, false, false, true},
		{30, false, false, true},
		{31, false, false, false},
	}
	for _, tc := range cases {
		p := offPlay("Rush", 3)
		p.YardsToGoal = tc.yardsToGoal
		got := c.Classify(p, team)
		if got.Tags.TightRedZone != tc.tight || got.Tags.RedZone != tc.red || got.Tags.GreenZone != tc.green {
			t.Errorf("yardsToGoal=%d: tags = (%v,%v,%v), want (%v,%v,%v)",
				tc.yardsToGoal,
				got.Tags.TightRedZone, got.Tags.RedZone, got.Tags.GreenZone,
				tc.tight, tc.red, tc.green)
		}
	}
}

// ---- Middle eight tests ----

func TestIsMiddleEight(t *testing.T) {
	cases := []struct {
		period, clock int
		want          bool
	}{
		{2, 240, true},
		{2, 241, false},
		{2, 0, true},
		{3, 660, true},
		{3, 659, false},
		{3, 900, true},
		{1, 120, false},
		{4, 120, false},
	}
	for _, tc := range cases {
		p := model.Play{Period: tc.period, ClockSeconds: tc.clock}
		if got := IsMiddleEight(p); got != tc.want {
			t.Errorf("period=%d clock=%d: IsMiddleEight = %v, want %v", tc.period, tc.clock, got, tc.want)
		}
	}
}

// ---- Fourth down tests ----

func TestIsFourthDownAttempt(t *testing.T) {
	base := func(playType, text string) model.Play {
		return model.Play{Offense: team, Defense: "Wisconsin", Down: 4, Distance: 2, PlayType: playType, PlayText: text}
	}
	cases := []struct {
		name string
		play model.Play
		want bool
	}{
		{"rush attempt", base("Rush", "rush for 3 yds"), true},
		{"pass attempt", base("Pass Incompletion", "pass incomplete"), true},
		{"punt excluded", base("Punt", "punt for 41 yds"), false},
		{"field goal excluded", base("Field Goal Good", "37 yd FG good"), false},
		{"timeout excluded", base("Timeout", "timeout by WASH"), false},
		{"kneel excluded", base("Rush", "takes a knee for -1 yds"), false},
		{"penalty no play excluded", base("Penalty", "false start, NO PLAY"), false},
		{"penalty that stood counts", base("Penalty", "rush for 5 yds, holding declined"), true},
		{"not fourth down", model.Play{Offense: team, Down: 3, PlayType: "Rush"}, false},
		{"opponent snap", model.Play{Offense: "Wisconsin", Down: 4, PlayType: "Rush"}, false},
	}
	for _, tc := range cases {
		if got := IsFourthDownAttempt(tc.play, team); got != tc.want {
			t.Errorf("%s: IsFourthDownAttempt = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestConverted(t *testing.T) {
	cases := []struct {
		name string
		play model.Play
		want bool
	}{
		{"text 1st down", model.Play{Distance: 10, YardsGained: 4, PlayText: "rush for 4 yds, 1st DOWN"}, true},
		{"text first down", model.Play{Distance: 10, YardsGained: 4, PlayText: "pass for 4 yds for a first down"}, true},
		{"touchdown text", model.Play{Distance: 3, YardsGained: 0, PlayText: "rush for a TOUCHDOWN"}, true},
		{"yardage meets distance", model.Play{Distance: 2, YardsGained: 2, PlayText: "rush up the middle"}, true},
		{"yardage short", model.Play{Distance: 2, YardsGained: 1, PlayText: "rush up the middle"}, false},
	}
	for _, tc := range cases {
		if got := Converted(tc.play); got != tc.want {
			t.Errorf("%s: Converted = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// ---- Turnover owner wiring ----

func TestClassifyAllPuntFumbleOwner(t *testing.T) {
	c := New(nil)
	plays := []model.Play{
		{
			GameID: "g1", DriveNumber: 3, PlayNumber: 4,
			Offense: team, Defense: "Wisconsin",
			PlayType: "Punt", PlayText: "punt for 40 yds, fumbled by the returner, recovered",
			Turnover: true, TurnoverType: model.TurnoverFumble,
		},
		// Next snap: the kicking team has the ball back, so the receiving
		// side lost the fumble.
		{
			GameID: "g1", DriveNumber: 4, PlayNumber: 1,
			Offense: team, Defense: "Wisconsin",
			PlayType: "Rush", PlayText: "rush for 2 yds",
		},
	}
	out := c.ClassifyAll(plays, team)
	if got := out[0].TurnoverOwner; got != "Wisconsin" {
		t.Errorf("TurnoverOwner = %q, want Wisconsin", got)
	}
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	c := New(nil)
	p := offPlay("Rush", 20)
	before := p
	c.Classify(p, team)
	if p != before {
		t.Error("Classify mutated its input play")
	}
}
