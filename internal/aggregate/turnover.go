package aggregate

import (
	"sort"
	"strings"

	"github.com/gridstats/go-cfb-metrics/internal/attribution"
	"github.com/gridstats/go-cfb-metrics/internal/model"
)

type driveRef struct {
	game  string
	drive int
}

// postTurnover pairs each counted turnover with the beneficiary's ensuing
// drive and sums the points that followed. Matching prefers the previous
// drive: a drive flagged as started-after-turnover is credited to the last
// counted turnover of the drive before it, falling back to a turnover
// recorded inside the flagged drive itself. Pick-sixes and fumble-return
// touchdowns that never produce a new drive are folded in from the
// turnover play's own scoring, deduplicated against matched drives.
func (c *reportContext) postTurnover() model.PostTurnoverSummary {
	s := model.PostTurnoverSummary{NetTrend: c.trend()}

	byDrive := make(map[driveRef][]model.ClassifiedPlay)
	var order []driveRef
	for _, p := range c.plays {
		k := driveRef{p.GameID, p.DriveNumber}
		if _, ok := byDrive[k]; !ok {
			order = append(order, k)
		}
		byDrive[k] = append(byDrive[k], p)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].game != order[j].game {
			return order[i].game < order[j].game
		}
		return order[i].drive < order[j].drive
	})

	type playRef struct {
		game  string
		drive int
		play  int
	}
	ref := func(p model.ClassifiedPlay) playRef {
		return playRef{p.GameID, p.DriveNumber, p.PlayNumber}
	}
	used := make(map[playRef]bool)

	for _, k := range order {
		drive := byDrive[k]
		if !driveFlagged(drive) {
			continue
		}
		t := lastCountedTurnover(byDrive[driveRef{k.game, k.drive - 1}])
		if t == nil {
			t = lastCountedTurnover(drive)
		}
		if t == nil || used[ref(*t)] {
			continue // inconsistent drive flag; skip rather than guess
		}
		used[ref(*t)] = true
		c.recordTurnover(&s, *t, drivePoints(drive, drive[0].Offense), driveResult(drive, drive[0].Offense))
	}

	// Direct scores: the turnover play itself put points on the board and
	// no flagged drive ever claimed it.
	for _, p := range c.plays {
		if used[ref(p)] || !attribution.CountsAsTurnover(p.Play) {
			continue
		}
		used[ref(p)] = true
		if p.Scoring && strings.Contains(strings.ToLower(p.PlayText), "touchdown") {
			c.recordTurnover(&s, p, 7, "Defensive Touchdown")
			continue
		}
		// Unscored, unmatched turnovers still count toward totals.
		c.recordTurnover(&s, p, 0, "No Score")
	}

	sort.Slice(s.Events, func(i, j int) bool {
		if s.Events[i].Week != s.Events[j].Week {
			return s.Events[i].Week < s.Events[j].Week
		}
		if s.Events[i].GameID != s.Events[j].GameID {
			return s.Events[i].GameID < s.Events[j].GameID
		}
		return s.Events[i].PlayText < s.Events[j].PlayText
	})
	return s
}

func (c *reportContext) recordTurnover(s *model.PostTurnoverSummary, t model.ClassifiedPlay, points int, result string) {
	owner := t.TurnoverOwner
	if owner == "" || owner == model.UnknownTeam {
		owner = t.Offense
	}
	ownedByTeam := c.forTeam(owner)
	wk := c.weekOf(t)

	if ownedByTeam {
		s.TeamTurnovers++
		s.PointsAllowed += points
		c.bump(s.NetTrend, wk, -points)
		if c.last3[wk] {
			s.Last3PointsAllowed += points
		}
	} else {
		s.OpponentTurnovers++
		s.PointsScored += points
		c.bump(s.NetTrend, wk, points)
		if c.last3[wk] {
			s.Last3PointsScored += points
		}
	}

	s.Events = append(s.Events, model.TurnoverEvent{
		GameID:       t.GameID,
		Week:         wk,
		Opponent:     t.Opponent,
		Period:       t.Period,
		ClockSeconds: t.ClockSeconds,
		Type:         t.TurnoverType,
		OwnedByTeam:  ownedByTeam,
		DriveResult:  result,
		Points:       points,
		PlayText:     t.PlayText,
	})
}

func driveFlagged(drive []model.ClassifiedPlay) bool {
	for _, p := range drive {
		if p.DriveStartedAfterTurnover {
			return true
		}
	}
	return false
}

func lastCountedTurnover(drive []model.ClassifiedPlay) *model.ClassifiedPlay {
	for i := len(drive) - 1; i >= 0; i-- {
		if attribution.CountsAsTurnover(drive[i].Play) {
			return &drive[i]
		}
	}
	return nil
}

// drivePoints sums the points the drive offense scored on a drive.
func drivePoints(drive []model.ClassifiedPlay, offense string) int {
	pts := 0
	for _, p := range drive {
		if !p.Scoring || !strings.EqualFold(p.Offense, offense) {
			continue
		}
		pts += scoringPoints(p.Play)
	}
	return pts
}

func driveResult(drive []model.ClassifiedPlay, offense string) string {
	best := ""
	for _, p := range drive {
		if !p.Scoring || !strings.EqualFold(p.Offense, offense) {
			continue
		}
		switch scoringPoints(p.Play) {
		case 7:
			return "Touchdown"
		case 3:
			best = "Field Goal"
		}
	}
	if best == "" {
		return "No Score"
	}
	return best
}
