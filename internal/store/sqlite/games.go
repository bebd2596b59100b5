package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"scorebook/internal/store"
)

func (c *Client) UpsertGame(ctx context.Context, g store.GameInput) error {
	query := `
	INSERT INTO games (id, visiting_team, home_team, date, site, use_dh, visitor_score, home_score, source_file, run_id, last_ingested)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (id) DO UPDATE SET
		visiting_team = excluded.visiting_team,
		home_team = excluded.home_team,
		date = excluded.date,
		site = excluded.site,
		use_dh = excluded.use_dh,
		visitor_score = excluded.visitor_score,
		home_score = excluded.home_score,
		source_file = excluded.source_file,
		run_id = excluded.run_id,
		last_ingested = datetime('now')
	`

	_, err := c.db.ExecContext(ctx, query,
		g.ID,
		g.VisitingTeam,
		g.HomeTeam,
		g.Date,
		g.Site,
		boolInt(g.UseDH),
		g.VisitorScore,
		g.HomeScore,
		g.SourceFile,
		g.RunID,
	)
	if err != nil {
		return fmt.Errorf("upserting game: %w", err)
	}
	return nil
}

func (c *Client) GetGame(ctx context.Context, id string) (*store.Game, error) {
	query := `
	SELECT id, visiting_team, home_team, date, site, use_dh, visitor_score, home_score, source_file, run_id
	FROM games
	WHERE id = ?
	`

	var g store.Game
	var useDH int
	err := c.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID,
		&g.VisitingTeam,
		&g.HomeTeam,
		&g.Date,
		&g.Site,
		&useDH,
		&g.VisitorScore,
		&g.HomeScore,
		&g.SourceFile,
		&g.RunID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting game: %w", err)
	}
	g.UseDH = useDH != 0
	return &g, nil
}

func (c *Client) ListGames(ctx context.Context, f store.GameFilter) ([]store.GameSummary, error) {
	var conditions []string
	var args []any

	if f.Team != "" {
		conditions = append(conditions, "(visiting_team = ? OR home_team = ?)")
		args = append(args, f.Team, f.Team)
	}
	if f.Park != "" {
		conditions = append(conditions, "home_team = ?")
		args = append(args, f.Park)
	}
	if f.Date != "" {
		conditions = append(conditions, "date = ?")
		args = append(args, f.Date)
	}

	query := `
	SELECT id, visiting_team, home_team, date, visitor_score, home_score,
	       (SELECT count(*) FROM anomalies a WHERE a.game_id = games.id) AS anomalies
	FROM games
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var out []store.GameSummary
	for rows.Next() {
		var g store.GameSummary
		if err := rows.Scan(&g.ID, &g.VisitingTeam, &g.HomeTeam, &g.Date, &g.VisitorScore, &g.HomeScore, &g.Anomalies); err != nil {
			return nil, fmt.Errorf("scanning game row: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating game rows: %w", err)
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
