package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	"nflverse-datahub/pkg/depthchart"
)

// LatestTakenAt returns the newest snapshot timestamp, or zero when the
// warehouse is still empty.
func (w *Warehouse) LatestTakenAt(ctx context.Context) (int64, error) {
	var latest sql.NullInt64
	err := w.DB.QueryRowContext(ctx, `SELECT MAX(taken_at) FROM depth_slots`).Scan(&latest)
	if err != nil {
		return 0, fmt.Errorf("latest snapshot: %w", err)
	}
	if !latest.Valid {
		return 0, nil
	}
	return latest.Int64, nil
}

// Snapshots lists every snapshot timestamp in the warehouse, newest first.
func (w *Warehouse) Snapshots(ctx context.Context) ([]int64, error) {
	rows, err := w.DB.QueryContext(ctx, `SELECT DISTINCT taken_at FROM depth_slots ORDER BY taken_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var stamps []int64
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		stamps = append(stamps, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshots: %w", err)
	}
	return stamps, nil
}

// Starters returns one snapshot ordered the way charts print: team, then
// position, then player. An empty team selects the whole league.
func (w *Warehouse) Starters(ctx context.Context, takenAt int64, team string) ([]depthchart.Starter, error) {
	query := `SELECT team, position, player, status FROM depth_slots WHERE taken_at = ` + w.placeholder(1)
	args := []any{takenAt}
	if team != "" {
		query += ` AND team = ` + w.placeholder(2)
		args = append(args, team)
	}
	query += ` ORDER BY team, position, player`

	rows, err := w.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load starters: %w", err)
	}
	defer rows.Close()

	var starters []depthchart.Starter
	for rows.Next() {
		var s depthchart.Starter
		if err := rows.Scan(&s.Team, &s.Position, &s.Player, &s.Status); err != nil {
			return nil, fmt.Errorf("scan starter: %w", err)
		}
		starters = append(starters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read starters: %w", err)
	}
	return starters, nil
}

// Teams lists the team slugs present in a snapshot.
func (w *Warehouse) Teams(ctx context.Context, takenAt int64) ([]string, error) {
	rows, err := w.DB.QueryContext(ctx,
		`SELECT DISTINCT team FROM depth_slots WHERE taken_at = `+w.placeholder(1)+` ORDER BY team`,
		takenAt)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read teams: %w", err)
	}
	return teams, nil
}
