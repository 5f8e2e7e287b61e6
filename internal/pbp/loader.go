package pbp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// Season is a team's normalized play-by-play data for one season.
type Season struct {
	Team  string
	Games []model.GameInfo
	Plays []model.Play
}

// DecodeGame decodes one game JSON document and normalizes its plays from
// the perspective of the given team.
func DecodeGame(data []byte, team string) (model.GameInfo, []model.Play, error) {
	var raw rawGameFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.GameInfo{}, nil, fmt.Errorf("decode game file: %w", err)
	}

	gi := raw.GameInfo
	teamIsHome := strings.EqualFold(team, gi.HomeTeam)

	opponent := gi.HomeTeam
	power4 := gi.HomePower4
	if teamIsHome {
		opponent = gi.AwayTeam
		power4 = gi.AwayPower4
	}

	game := model.GameInfo{
		GameID:           string(gi.GameID),
		Week:             int(gi.Week),
		Opponent:         opponent,
		HomeTeam:         gi.HomeTeam,
		AwayTeam:         gi.AwayTeam,
		Date:             gi.Date,
		IsConference:     gi.Conference,
		IsPower4Opponent: power4,
	}

	plays := make([]model.Play, 0, len(raw.Plays))
	for i := range raw.Plays {
		plays = append(plays, raw.Plays[i].normalize(game))
	}
	return game, plays, nil
}

// LoadTeamDir reads every *.json game file in dir and returns the team's
// season, games sorted by week.
func LoadTeamDir(dir, team string) (*Season, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	season := &Season{Team: team}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		game, plays, err := DecodeGame(data, team)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if game.GameID == "" {
			continue // header-less file, nothing to anchor plays to
		}
		season.Games = append(season.Games, game)
		season.Plays = append(season.Plays, plays...)
	}

	sort.Slice(season.Games, func(i, j int) bool {
		return season.Games[i].Week < season.Games[j].Week
	})
	if len(season.Games) == 0 {
		return nil, fmt.Errorf("no game files found in %s", dir)
	}
	return season, nil
}
