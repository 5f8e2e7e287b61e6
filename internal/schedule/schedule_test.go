package schedule

import (
	"reflect"
	"testing"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

func game(id string, week int, opp string) model.GameInfo {
	return model.GameInfo{GameID: id, Week: week, Opponent: opp}
}

func TestBuildFillsByeWeeks(t *testing.T) {
	games := []model.GameInfo{
		game("g5", 5, "Oregon"),
		game("g1", 1, "Rutgers"),
		game("g2", 2, "Michigan"),
		game("g4", 4, "Iowa"),
	}
	idx := Build(games, 0)

	wantOpponents := []string{"Rutgers", "Michigan", model.ByeOpponent, "Iowa", "Oregon"}
	if !reflect.DeepEqual(idx.Opponents, wantOpponents) {
		t.Fatalf("Opponents = %v, want %v", idx.Opponents, wantOpponents)
	}
	if !idx.IsBye(3) {
		t.Error("week 3 should be a bye")
	}
	if idx.IsBye(4) {
		t.Error("week 4 should not be a bye")
	}
	if got := idx.MaxWeek(); got != 5 {
		t.Errorf("MaxWeek = %d, want 5", got)
	}
	if got := idx.WeekOf("g4"); got != 4 {
		t.Errorf("WeekOf(g4) = %d, want 4", got)
	}
	if got := idx.WeekGames[5]; got != "g5" {
		t.Errorf("WeekGames[5] = %q, want g5", got)
	}
}

func TestBuildForcedMaxWeek(t *testing.T) {
	idx := Build([]model.GameInfo{game("g1", 1, "Rutgers")}, 4)
	if got := idx.MaxWeek(); got != 4 {
		t.Fatalf("MaxWeek = %d, want 4", got)
	}
	for wk := 2; wk <= 4; wk++ {
		if !idx.IsBye(wk) {
			t.Errorf("week %d should be a bye", wk)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	idx := Build(nil, 0)
	if got := idx.MaxWeek(); got != 0 {
		t.Errorf("MaxWeek = %d, want 0", got)
	}
	if len(idx.Opponents) != 0 {
		t.Errorf("Opponents = %v, want empty", idx.Opponents)
	}
}

func TestLastN(t *testing.T) {
	idx := Build([]model.GameInfo{
		game("g1", 1, "Rutgers"),
		game("g2", 2, "Michigan"),
		game("g4", 4, "Iowa"),
		game("g6", 6, "Oregon"),
	}, 0)

	// Bye weeks never count toward the window; oldest first.
	got := idx.LastN(3)
	want := []int{2, 4, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LastN(3) = %v, want %v", got, want)
	}

	got = idx.LastN(10)
	want = []int{1, 2, 4, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LastN(10) = %v, want %v", got, want)
	}
}

func TestMaxWeekAcross(t *testing.T) {
	a := []model.GameInfo{game("g1", 1, "Rutgers"), game("g9", 9, "Oregon")}
	b := []model.GameInfo{game("h3", 3, "Iowa")}
	if got := MaxWeekAcross(a, b); got != 9 {
		t.Errorf("MaxWeekAcross = %d, want 9", got)
	}
	if got := MaxWeekAcross(); got != 0 {
		t.Errorf("MaxWeekAcross() = %d, want 0", got)
	}
}
