package charts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridstats/go-cfb-metrics/internal/model"
	"github.com/gridstats/go-cfb-metrics/internal/schedule"
)

func TestRenderTrend(t *testing.T) {
	weeks := schedule.Build([]model.GameInfo{
		{GameID: "g1", Week: 1, Opponent: "Rutgers"},
		{GameID: "g3", Week: 3, Opponent: "Michigan"},
	}, 0)

	out := filepath.Join(t.TempDir(), "trend.html")
	cfg := DefaultConfig()
	cfg.Title = "Washington: explosive plays by week"

	err := RenderTrend(weeks, []Series{{Name: "EXPLOSIVE", Values: []int{2, 0, 1}}}, cfg, out)
	if err != nil {
		t.Fatalf("RenderTrend: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "W1 Rutgers") {
		t.Error("chart missing week 1 axis label")
	}
	if !strings.Contains(html, "W2 (bye)") {
		t.Error("chart missing bye-week axis label")
	}
	if !strings.Contains(html, "EXPLOSIVE") {
		t.Error("chart missing series name")
	}
}

func TestRenderTrendNoSeries(t *testing.T) {
	if err := RenderTrend(model.WeekIndex{}, nil, DefaultConfig(), "unused.html"); err == nil {
		t.Error("want error when no series given")
	}
}
