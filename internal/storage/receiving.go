package storage

import (
	"fmt"

	"github.com/gridstats/go-cfb-metrics/internal/model"
	"github.com/gridstats/go-cfb-metrics/internal/sis"
)

// Receiving-feed row scopes.
const (
	scopeTotal  = "total"
	scopeWeek   = "week"
	scopePlayer = "player"
)

// InsertReceiving upserts one team's situational receiving feed in a
// transaction: a total row, one row per feed week, and one per player,
// for each situation.
func (db *DB) InsertReceiving(feed sis.TeamFeed) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO receiving(
			team, situation, scope, week, player, opponent,
			targets, receptions, first_downs, touchdowns, yards
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	put := func(situation, scope string, week int, player, opponent string, l model.ReceivingLine) error {
		_, err := stmt.Exec(feed.Team, situation, scope, week, player, opponent,
			l.Targets, l.Receptions, l.FirstDowns, l.Touchdowns, l.Yards)
		if err != nil {
			return fmt.Errorf("insert receiving %s/%s/%s: %w", feed.Team, situation, scope, err)
		}
		return nil
	}

	for _, s := range []sis.Situation{feed.ThirdDown, feed.RedZone} {
		if err := put(s.Name, scopeTotal, 0, "", "", s.Total); err != nil {
			return err
		}
		for _, wl := range s.Weeks {
			if err := put(s.Name, scopeWeek, wl.Week, "", wl.Opponent, wl.Line); err != nil {
				return err
			}
		}
		for _, pl := range s.Players {
			if err := put(s.Name, scopePlayer, 0, pl.Name, "", pl.Line); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// GetReceiving rebuilds a team's receiving feed from stored rows. Returns
// nil with no error when nothing is stored for the team.
func (db *DB) GetReceiving(team string) (*sis.TeamFeed, error) {
	rows, err := db.conn.Query(`
		SELECT situation, scope, week, player, opponent,
		       targets, receptions, first_downs, touchdowns, yards
		FROM receiving WHERE team = ?
		ORDER BY situation, scope, week, player`, team)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	situations := map[string]*sis.Situation{
		sis.SituationThirdDown: {Name: sis.SituationThirdDown},
		sis.SituationRedZone:   {Name: sis.SituationRedZone},
	}
	found := false
	for rows.Next() {
		var situation, scope, player, opponent string
		var week int
		var l model.ReceivingLine
		if err := rows.Scan(&situation, &scope, &week, &player, &opponent,
			&l.Targets, &l.Receptions, &l.FirstDowns, &l.Touchdowns, &l.Yards); err != nil {
			return nil, err
		}
		s, ok := situations[situation]
		if !ok {
			continue
		}
		found = true
		switch scope {
		case scopeTotal:
			s.Total = l
		case scopeWeek:
			s.Weeks = append(s.Weeks, sis.WeekLine{Week: week, Opponent: opponent, Line: l})
		case scopePlayer:
			s.Players = append(s.Players, sis.PlayerLine{Name: player, Line: l})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &sis.TeamFeed{
		Team:      team,
		ThirdDown: *situations[sis.SituationThirdDown],
		RedZone:   *situations[sis.SituationRedZone],
	}, nil
}

// ReceivingTeams lists teams with stored receiving rows.
func (db *DB) ReceivingTeams() ([]string, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT team FROM receiving ORDER BY team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
