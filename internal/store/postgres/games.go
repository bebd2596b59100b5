package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"scorebook/internal/store"
)

func (c *Client) UpsertGame(ctx context.Context, g store.GameInput) error {
	query := `
	INSERT INTO games (id, visiting_team, home_team, date, site, use_dh, visitor_score, home_score, source_file, run_id, last_ingested)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
	ON CONFLICT (id) DO UPDATE SET
		visiting_team = EXCLUDED.visiting_team,
		home_team = EXCLUDED.home_team,
		date = EXCLUDED.date,
		site = EXCLUDED.site,
		use_dh = EXCLUDED.use_dh,
		visitor_score = EXCLUDED.visitor_score,
		home_score = EXCLUDED.home_score,
		source_file = EXCLUDED.source_file,
		run_id = EXCLUDED.run_id,
		last_ingested = now()
	`

	_, err := c.pool.Exec(ctx, query,
		g.ID, g.VisitingTeam, g.HomeTeam, g.Date, g.Site, g.UseDH,
		g.VisitorScore, g.HomeScore, g.SourceFile, g.RunID)
	if err != nil {
		return fmt.Errorf("upserting game: %w", err)
	}
	return nil
}

func (c *Client) GetGame(ctx context.Context, id string) (*store.Game, error) {
	query := `
	SELECT id, visiting_team, home_team, date, site, use_dh, visitor_score, home_score, source_file, run_id
	FROM games
	WHERE id = $1
	`

	var g store.Game
	err := c.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.VisitingTeam, &g.HomeTeam, &g.Date, &g.Site, &g.UseDH,
		&g.VisitorScore, &g.HomeScore, &g.SourceFile, &g.RunID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting game: %w", err)
	}
	return &g, nil
}

func (c *Client) ListGames(ctx context.Context, f store.GameFilter) ([]store.GameSummary, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Team != "" {
		p := arg(f.Team)
		conditions = append(conditions, fmt.Sprintf("(visiting_team = %s OR home_team = %s)", p, p))
	}
	if f.Park != "" {
		conditions = append(conditions, fmt.Sprintf("home_team = %s", arg(f.Park)))
	}
	if f.Date != "" {
		conditions = append(conditions, fmt.Sprintf("date = %s", arg(f.Date)))
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
		query += " LIMIT " + arg(f.Limit)
	}

	rows, err := c.pool.Query(ctx, query, args...)
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
