package storage

import (
	"database/sql"
	"fmt"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// TeamCount is one row of the teams listing.
type TeamCount struct {
	Team  string
	Games int
	Plays int
}

// InsertGames upserts a team's game list in a transaction.
func (db *DB) InsertGames(team string, games []model.GameInfo) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games(
			team, game_id, week, opponent, home_team, away_team, game_date,
			is_conference, is_power4_opponent
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range games {
		_, err = stmt.Exec(
			team, g.GameID, g.Week, g.Opponent, g.HomeTeam, g.AwayTeam, g.Date,
			nullBool(g.IsConference), nullBool(g.IsPower4Opponent),
		)
		if err != nil {
			return fmt.Errorf("insert game %s: %w", g.GameID, err)
		}
	}
	return tx.Commit()
}

// InsertPlays bulk-upserts normalized plays in a transaction.
func (db *DB) InsertPlays(team string, plays []model.Play) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO plays(
			team, game_id, drive_id, drive_number, play_number,
			period, clock_seconds, down, distance, yards_to_goal,
			offense, defense, play_type, play_text, play_classification,
			yards_gained, scoring, turnover, turnover_type,
			penalty_type, penalty_decision, drive_started_after_turnover,
			week, opponent, is_conference, is_power4_opponent, ppa
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range plays {
		_, err = stmt.Exec(
			team, p.GameID, p.DriveID, p.DriveNumber, p.PlayNumber,
			p.Period, p.ClockSeconds, p.Down, p.Distance, p.YardsToGoal,
			p.Offense, p.Defense, p.PlayType, p.PlayText, p.PlayClassification,
			p.YardsGained, boolInt(p.Scoring), boolInt(p.Turnover), p.TurnoverType.String(),
			p.PenaltyType, p.PenaltyDecision.String(), boolInt(p.DriveStartedAfterTurnover),
			p.Week, p.Opponent, nullBool(p.IsConference), nullBool(p.IsPower4Opponent),
			nullFloat(p.PPA),
		)
		if err != nil {
			return fmt.Errorf("insert play %s/%d/%d: %w", p.GameID, p.DriveNumber, p.PlayNumber, err)
		}
	}
	return tx.Commit()
}

// GetGames returns a team's stored game list ordered by week.
func (db *DB) GetGames(team string) ([]model.GameInfo, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, week, opponent, home_team, away_team, game_date,
		       is_conference, is_power4_opponent
		FROM games WHERE team = ? ORDER BY week`, team)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameInfo
	for rows.Next() {
		var g model.GameInfo
		var conf, p4 sql.NullInt64
		if err := rows.Scan(&g.GameID, &g.Week, &g.Opponent, &g.HomeTeam,
			&g.AwayTeam, &g.Date, &conf, &p4); err != nil {
			return nil, err
		}
		g.IsConference = intBool(conf)
		g.IsPower4Opponent = intBool(p4)
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetPlays returns a team's stored plays in game order.
func (db *DB) GetPlays(team string) ([]model.Play, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, drive_id, drive_number, play_number,
		       period, clock_seconds, down, distance, yards_to_goal,
		       offense, defense, play_type, play_text, play_classification,
		       yards_gained, scoring, turnover, turnover_type,
		       penalty_type, penalty_decision, drive_started_after_turnover,
		       week, opponent, is_conference, is_power4_opponent, ppa
		FROM plays WHERE team = ?
		ORDER BY week, game_id, drive_number, play_number`, team)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Play
	for rows.Next() {
		var p model.Play
		var scoring, turnover, afterTO int
		var toType, decision string
		var conf, p4 sql.NullInt64
		var ppa sql.NullFloat64
		if err := rows.Scan(
			&p.GameID, &p.DriveID, &p.DriveNumber, &p.PlayNumber,
			&p.Period, &p.ClockSeconds, &p.Down, &p.Distance, &p.YardsToGoal,
			&p.Offense, &p.Defense, &p.PlayType, &p.PlayText, &p.PlayClassification,
			&p.YardsGained, &scoring, &turnover, &toType,
			&p.PenaltyType, &decision, &afterTO,
			&p.Week, &p.Opponent, &conf, &p4, &ppa,
		); err != nil {
			return nil, err
		}
		p.Scoring = scoring != 0
		p.Turnover = turnover != 0
		p.TurnoverType = parseTurnoverType(toType)
		p.PenaltyDecision = parsePenaltyDecision(decision)
		p.DriveStartedAfterTurnover = afterTO != 0
		p.IsConference = intBool(conf)
		p.IsPower4Opponent = intBool(p4)
		if ppa.Valid {
			v := ppa.Float64
			p.PPA = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListTeams returns stored teams with their game and play counts.
func (db *DB) ListTeams() ([]TeamCount, error) {
	rows, err := db.conn.Query(`
		SELECT g.team, COUNT(DISTINCT g.game_id),
		       (SELECT COUNT(1) FROM plays p WHERE p.team = g.team)
		FROM games g GROUP BY g.team ORDER BY g.team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TeamCount
	for rows.Next() {
		var t TeamCount
		if err := rows.Scan(&t.Team, &t.Games, &t.Plays); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// HasTeam reports whether any plays are stored for the team.
func (db *DB) HasTeam(team string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM plays WHERE team = ?", team).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	return boolInt(*b)
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func intBool(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Int64 != 0
	return &b
}

func parseTurnoverType(s string) model.TurnoverType {
	switch s {
	case "Interception":
		return model.TurnoverInterception
	case "Fumble":
		return model.TurnoverFumble
	case "Downs":
		return model.TurnoverDowns
	default:
		return model.TurnoverNone
	}
}

func parsePenaltyDecision(s string) model.PenaltyDecision {
	switch s {
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
