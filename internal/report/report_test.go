package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gridstats/go-cfb-metrics/internal/model"
	"github.com/gridstats/go-cfb-metrics/internal/schedule"
)

func testReport() *model.TeamReport {
	weeks := schedule.Build([]model.GameInfo{
		{GameID: "g1", Week: 1, Opponent: "Rutgers"},
		{GameID: "g3", Week: 3, Opponent: "Michigan"},
	}, 0)
	return &model.TeamReport{
		Team:  "Washington",
		Weeks: weeks,
		Explosive: model.ExplosiveSummary{
			Total:     3,
			WeekTrend: []int{2, 0, 1},
		},
		PostTurnover: model.PostTurnoverSummary{NetTrend: []int{0, 0, -7}},
	}
}

func TestSeries(t *testing.T) {
	r := testReport()

	values, label, err := Series(r, "explosive")
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if label != "EXPLOSIVE" {
		t.Errorf("label = %q", label)
	}
	if len(values) != 3 || values[0] != 2 {
		t.Errorf("values = %v, want [2 0 1]", values)
	}

	values, _, err = Series(r, "turnover-net")
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if values[2] != -7 {
		t.Errorf("values = %v, want -7 in week 3", values)
	}
}

func TestSeriesUnknownSituation(t *testing.T) {
	if _, _, err := Series(testReport(), "bogus"); err == nil {
		t.Error("want error for unknown situation")
	}
}

func TestSeriesTargetsWithoutFeed(t *testing.T) {
	if _, _, err := Series(testReport(), "targets"); err == nil {
		t.Error("want error when no receiving feed is loaded")
	}
}

func TestPrintTrendTableMarksByes(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTrendTable(&buf, testReport(), "explosive"); err != nil {
		t.Fatalf("PrintTrendTable: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Rutgers") || !strings.Contains(out, "Michigan") {
		t.Errorf("output missing opponents:\n%s", out)
	}
	if !strings.Contains(out, model.ByeOpponent) {
		t.Errorf("output missing BYE row:\n%s", out)
	}
}

func TestFmtClock(t *testing.T) {
	if got := fmtClock(125); got != "2:05" {
		t.Errorf("fmtClock(125) = %q, want 2:05", got)
	}
	if got := fmtClock(0); got != "0:00" {
		t.Errorf("fmtClock(0) = %q, want 0:00", got)
	}
}
