package storage

import (
	"testing"

	"github.com/gridstats/go-cfb-metrics/internal/model"
	"github.com/gridstats/go-cfb-metrics/internal/sis"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func boolPtr(b bool) *bool { return &b }

func testGame() model.GameInfo {
	return model.GameInfo{
		GameID:           "401520281",
		Week:             3,
		Opponent:         "Michigan",
		HomeTeam:         "Washington",
		AwayTeam:         "Michigan",
		Date:             "2024-09-14",
		IsConference:     boolPtr(true),
		IsPower4Opponent: boolPtr(true),
	}
}

func testPlay() model.Play {
	ppa := 0.42
	return model.Play{
		GameID:                    "401520281",
		DriveID:                   "4015202811",
		DriveNumber:               1,
		PlayNumber:                2,
		Period:                    2,
		ClockSeconds:              125,
		Down:                      3,
		Distance:                  7,
		YardsToGoal:               45,
		Offense:                   "Washington",
		Defense:                   "Michigan",
		PlayType:                  "Pass Reception",
		PlayText:                  "pass complete for 12 yds, 1st down",
		PlayClassification:        "standard_down",
		YardsGained:               12,
		Scoring:                   false,
		Turnover:                  true,
		TurnoverType:              model.TurnoverFumble,
		PenaltyType:               "Holding",
		PenaltyDecision:           model.DecisionDeclined,
		DriveStartedAfterTurnover: true,
		Week:                      3,
		Opponent:                  "Michigan",
		IsConference:              boolPtr(true),
		IsPower4Opponent:          nil,
		PPA:                       &ppa,
	}
}

func TestGamesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	want := testGame()

	if err := db.InsertGames("Washington", []model.GameInfo{want}); err != nil {
		t.Fatalf("InsertGames: %v", err)
	}
	got, err := db.GetGames("Washington")
	if err != nil {
		t.Fatalf("GetGames: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d games, want 1", len(got))
	}
	g := got[0]
	if g.GameID != want.GameID || g.Week != want.Week || g.Opponent != want.Opponent || g.Date != want.Date {
		t.Errorf("game = %+v, want %+v", g, want)
	}
	if g.IsConference == nil || !*g.IsConference {
		t.Error("IsConference lost in round trip")
	}
}

func TestGamesUpsert(t *testing.T) {
	db := openTestDB(t)
	g := testGame()
	if err := db.InsertGames("Washington", []model.GameInfo{g}); err != nil {
		t.Fatal(err)
	}
	g.Opponent = "Michigan State"
	if err := db.InsertGames("Washington", []model.GameInfo{g}); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetGames("Washington")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Opponent != "Michigan State" {
		t.Errorf("got %+v, want one replaced row", got)
	}
}

func TestPlaysRoundTrip(t *testing.T) {
	db := openTestDB(t)
	want := testPlay()

	if err := db.InsertPlays("Washington", []model.Play{want}); err != nil {
		t.Fatalf("InsertPlays: %v", err)
	}
	got, err := db.GetPlays("Washington")
	if err != nil {
		t.Fatalf("GetPlays: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d plays, want 1", len(got))
	}
	p := got[0]
	if p.GameID != want.GameID || p.DriveNumber != want.DriveNumber || p.PlayNumber != want.PlayNumber {
		t.Errorf("identity fields lost: %+v", p)
	}
	if p.TurnoverType != model.TurnoverFumble {
		t.Errorf("TurnoverType = %v, want fumble", p.TurnoverType)
	}
	if p.PenaltyDecision != model.DecisionDeclined {
		t.Errorf("PenaltyDecision = %v, want declined", p.PenaltyDecision)
	}
	if !p.Turnover || p.Scoring {
		t.Errorf("bool flags lost: turnover=%v scoring=%v", p.Turnover, p.Scoring)
	}
	if !p.DriveStartedAfterTurnover {
		t.Error("DriveStartedAfterTurnover lost")
	}
	if p.IsConference == nil || !*p.IsConference {
		t.Error("IsConference lost")
	}
	if p.IsPower4Opponent != nil {
		t.Error("nil enrichment should stay nil, not become false")
	}
	if p.PPA == nil || *p.PPA != 0.42 {
		t.Errorf("PPA = %v, want 0.42", p.PPA)
	}
}

func TestPlaysOrdering(t *testing.T) {
	db := openTestDB(t)
	a := testPlay()
	a.Week, a.GameID, a.DriveNumber, a.PlayNumber = 5, "g5", 1, 1
	b := testPlay()
	b.Week, b.GameID, b.DriveNumber, b.PlayNumber = 1, "g1", 2, 3
	c := testPlay()
	c.Week, c.GameID, c.DriveNumber, c.PlayNumber = 1, "g1", 2, 1

	if err := db.InsertPlays("Washington", []model.Play{a, b, c}); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetPlays("Washington")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d plays, want 3", len(got))
	}
	if got[0].PlayNumber != 1 || got[1].PlayNumber != 3 || got[2].GameID != "g5" {
		t.Errorf("order = %s/%d, %s/%d, %s/%d; want week then drive then play",
			got[0].GameID, got[0].PlayNumber, got[1].GameID, got[1].PlayNumber, got[2].GameID, got[2].PlayNumber)
	}
}

func TestListTeamsAndHasTeam(t *testing.T) {
	db := openTestDB(t)
	if err := db.InsertGames("Washington", []model.GameInfo{testGame()}); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertPlays("Washington", []model.Play{testPlay()}); err != nil {
		t.Fatal(err)
	}

	teams, err := db.ListTeams()
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(teams) != 1 || teams[0].Team != "Washington" || teams[0].Games != 1 || teams[0].Plays != 1 {
		t.Errorf("teams = %+v, want [{Washington 1 1}]", teams)
	}

	ok, err := db.HasTeam("Washington")
	if err != nil || !ok {
		t.Errorf("HasTeam(Washington) = %v, %v", ok, err)
	}
	ok, err = db.HasTeam("Oregon")
	if err != nil || ok {
		t.Errorf("HasTeam(Oregon) = %v, %v", ok, err)
	}
}

func TestReceivingRoundTrip(t *testing.T) {
	db := openTestDB(t)
	feed := sis.TeamFeed{
		Team: "Washington",
		ThirdDown: sis.Situation{
			Name:  sis.SituationThirdDown,
			Total: model.ReceivingLine{Targets: 30, Receptions: 20, FirstDowns: 15, Touchdowns: 2, Yards: 260},
			Weeks: []sis.WeekLine{
				{Week: 1, Opponent: "Rutgers", Line: model.ReceivingLine{Targets: 10, Receptions: 7}},
				{Week: 2, Opponent: "Michigan", Line: model.ReceivingLine{Targets: 8, Receptions: 5}},
			},
			Players: []sis.PlayerLine{
				{Name: "A. Jones", Line: model.ReceivingLine{Targets: 16, Receptions: 10}},
			},
		},
		RedZone: sis.Situation{
			Name:  sis.SituationRedZone,
			Total: model.ReceivingLine{Targets: 12, Receptions: 8, Touchdowns: 5},
		},
	}

	if err := db.InsertReceiving(feed); err != nil {
		t.Fatalf("InsertReceiving: %v", err)
	}
	got, err := db.GetReceiving("Washington")
	if err != nil {
		t.Fatalf("GetReceiving: %v", err)
	}
	if got == nil {
		t.Fatal("GetReceiving returned nil for a stored team")
	}
	if got.ThirdDown.Total.Targets != 30 {
		t.Errorf("third-down total targets = %d, want 30", got.ThirdDown.Total.Targets)
	}
	if len(got.ThirdDown.Weeks) != 2 || got.ThirdDown.Weeks[1].Opponent != "Michigan" {
		t.Errorf("weeks = %+v", got.ThirdDown.Weeks)
	}
	if len(got.ThirdDown.Players) != 1 || got.ThirdDown.Players[0].Name != "A. Jones" {
		t.Errorf("players = %+v", got.ThirdDown.Players)
	}
	if got.RedZone.Total.Touchdowns != 5 {
		t.Errorf("red-zone TDs = %d, want 5", got.RedZone.Total.Touchdowns)
	}

	teams, err := db.ReceivingTeams()
	if err != nil || len(teams) != 1 || teams[0] != "Washington" {
		t.Errorf("ReceivingTeams = %v, %v", teams, err)
	}
}

func TestGetReceivingMissingTeam(t *testing.T) {
	db := openTestDB(t)
	got, err := db.GetReceiving("Oregon")
	if err != nil {
		t.Fatalf("GetReceiving: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for an unknown team", got)
	}
}

func TestRawQuery(t *testing.T) {
	db := openTestDB(t)
	if err := db.InsertGames("Washington", []model.GameInfo{testGame()}); err != nil {
		t.Fatal(err)
	}
	rows, err := db.RawQuery("SELECT g.team, g.week, p.ppa FROM games g LEFT JOIN plays p ON p.team = g.team LIMIT 1")
	if err != nil {
		t.Fatalf("RawQuery: %v", err)
	}
	if len(rows.Columns) != 3 {
		t.Fatalf("columns = %v, want 3", rows.Columns)
	}
	if len(rows.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows.Rows))
	}
	// The play side of the join is empty, so ppa stringifies as NULL.
	if rows.Rows[0][2] != "NULL" {
		t.Errorf("ppa cell = %q, want NULL", rows.Rows[0][2])
	}
}
