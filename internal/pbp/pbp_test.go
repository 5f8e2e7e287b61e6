package pbp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// ---- ParseClock tests ----

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"14:23", 863},
		{"0:07", 7},
		{"minutes=4 seconds=30", 270},
		{"seconds=30 minutes=4", 270}, // key order varies by provider
		{"minutes=12", 720},
		{"seconds=45", 45},
		{"", 0},
		{"garbage", 0},
		{" 3:05 ", 185},
	}
	for _, tc := range cases {
		if got := ParseClock(tc.in); got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// ---- DecodeGame tests ----

const gameJSON = `{
  "game_info": {
    "game_id": 401520281,
    "week": "3",
    "date": "2024-09-14",
    "home_team": "Washington",
    "away_team": "Michigan",
    "conference": true,
    "home_power4": true,
    "away_power4": true
  },
  "plays": [
    {
      "drive_id": "4015202811",
      "drive_number": 1,
      "play_number": "1",
      "period": {"number": 1},
      "clock": "minutes=14 seconds=55",
      "down": 1,
      "distance": 10,
      "yards_to_goal": 75,
      "offense": "Washington",
      "defense": "Michigan",
      "play_type": "Rush",
      "play_text": "rush for 4 yds",
      "yards_gained": 4,
      "ppa": 0.12
    },
    {
      "drive_id": "4015202811",
      "drive_number": 1,
      "play_number": 2,
      "period": 1,
      "clock": "14:20",
      "down": null,
      "distance": null,
      "offense": "Washington",
      "defense": "Michigan",
      "play_type": "Penalty",
      "play_text": "PENALTY WASH False Start (5 yards)",
      "yards_gained": -5,
      "penalty_type": "False Start",
      "penalty_decision": "accepted",
      "turnover": true,
      "turnover_type": "interception"
    }
  ]
}`

func TestDecodeGameHomePerspective(t *testing.T) {
	game, plays, err := DecodeGame([]byte(gameJSON), "Washington")
	if err != nil {
		t.Fatalf("DecodeGame: %v", err)
	}

	if game.GameID != "401520281" {
		t.Errorf("GameID = %q, want 401520281", game.GameID)
	}
	if game.Week != 3 {
		t.Errorf("Week = %d, want 3 (string week)", game.Week)
	}
	if game.Opponent != "Michigan" {
		t.Errorf("Opponent = %q, want Michigan", game.Opponent)
	}
	if game.IsConference == nil || !*game.IsConference {
		t.Error("IsConference should be true")
	}
	if game.IsPower4Opponent == nil || !*game.IsPower4Opponent {
		t.Error("IsPower4Opponent should be true (away_power4)")
	}

	if len(plays) != 2 {
		t.Fatalf("plays = %d, want 2", len(plays))
	}

	p := plays[0]
	if p.Period != 1 {
		t.Errorf("Period = %d, want 1 (nested object form)", p.Period)
	}
	if p.ClockSeconds != 14*60+55 {
		t.Errorf("ClockSeconds = %d, want 895", p.ClockSeconds)
	}
	if p.Week != 3 || p.Opponent != "Michigan" {
		t.Errorf("game context not stamped: week=%d opp=%q", p.Week, p.Opponent)
	}
	if p.PPA == nil || *p.PPA != 0.12 {
		t.Errorf("PPA = %v, want 0.12", p.PPA)
	}

	q := plays[1]
	if q.ClockSeconds != 14*60+20 {
		t.Errorf("ClockSeconds = %d, want 860 (MM:SS form)", q.ClockSeconds)
	}
	if q.Down != 0 || q.Distance != 0 {
		t.Errorf("null down/distance = %d/%d, want 0/0", q.Down, q.Distance)
	}
	if q.YardsToGoal != 100 {
		t.Errorf("missing yards_to_goal = %d, want default 100", q.YardsToGoal)
	}
	if q.PenaltyDecision != model.DecisionAccepted {
		t.Errorf("PenaltyDecision = %v, want accepted", q.PenaltyDecision)
	}
	if q.TurnoverType != model.TurnoverInterception {
		t.Errorf("TurnoverType = %v, want interception", q.TurnoverType)
	}
	if q.PPA != nil {
		t.Errorf("PPA = %v, want nil when absent", q.PPA)
	}
}

func TestDecodeGameAwayPerspective(t *testing.T) {
	game, _, err := DecodeGame([]byte(gameJSON), "Michigan")
	if err != nil {
		t.Fatalf("DecodeGame: %v", err)
	}
	if game.Opponent != "Washington" {
		t.Errorf("Opponent = %q, want Washington", game.Opponent)
	}
	if game.IsPower4Opponent == nil || !*game.IsPower4Opponent {
		t.Error("IsPower4Opponent should follow home_power4 for the away team")
	}
}

func TestDecodeGameBadJSON(t *testing.T) {
	if _, _, err := DecodeGame([]byte(`{`), "Washington"); err == nil {
		t.Error("want error for malformed JSON")
	}
}

// ---- LoadTeamDir tests ----

func TestLoadTeamDir(t *testing.T) {
	dir := t.TempDir()

	second := `{
	  "game_info": {"game_id": "g2", "week": 1, "home_team": "Rutgers", "away_team": "Washington"},
	  "plays": [{"drive_number": 1, "play_number": 1, "offense": "Washington", "defense": "Rutgers", "play_type": "Rush", "yards_gained": 6}]
	}`
	if err := os.WriteFile(filepath.Join(dir, "week3.json"), []byte(gameJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "week1.json"), []byte(second), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	season, err := LoadTeamDir(dir, "Washington")
	if err != nil {
		t.Fatalf("LoadTeamDir: %v", err)
	}
	if len(season.Games) != 2 {
		t.Fatalf("games = %d, want 2", len(season.Games))
	}
	// Sorted by week regardless of file name order.
	if season.Games[0].Week != 1 || season.Games[1].Week != 3 {
		t.Errorf("game order = %d,%d, want 1,3", season.Games[0].Week, season.Games[1].Week)
	}
	if len(season.Plays) != 3 {
		t.Errorf("plays = %d, want 3", len(season.Plays))
	}
}

func TestLoadTeamDirEmpty(t *testing.T) {
	if _, err := LoadTeamDir(t.TempDir(), "Washington"); err == nil {
		t.Error("want error for a directory with no game files")
	}
}
