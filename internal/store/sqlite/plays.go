package sqlite

import (
	"context"
	"fmt"

	"scorebook/internal/store"
)

func (c *Client) ReplacePlays(ctx context.Context, gameID string, plays []store.PlayInput) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM plays WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("clearing plays: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM plays_fts WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("clearing play index: %w", err)
	}

	insert := `
	INSERT INTO plays (game_id, seq, inning, home_half, batter, raw, kind, runs, rbis, outs, flagged, warning,
	                   first_runner, second_runner, third_runner, outs_after, visitor_score, home_score)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	index := `
	INSERT INTO plays_fts (raw, batter, game_id, seq, inning, kind)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, p := range plays {
		_, err := tx.ExecContext(ctx, insert,
			gameID, p.Seq, p.Inning, boolInt(p.Home), p.Batter, p.Raw, p.Kind,
			p.Runs, p.RBIs, p.Outs, boolInt(p.Flagged), p.Warning,
			p.First, p.Second, p.Third, p.OutsAfter, p.VisitorScore, p.HomeScore,
		)
		if err != nil {
			return fmt.Errorf("inserting play %d: %w", p.Seq, err)
		}
		if _, err := tx.ExecContext(ctx, index, p.Raw, p.Batter, gameID, p.Seq, p.Inning, p.Kind); err != nil {
			return fmt.Errorf("indexing play %d: %w", p.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing plays: %w", err)
	}
	return nil
}

func (c *Client) GetPlays(ctx context.Context, gameID string) ([]store.Play, error) {
	query := `
	SELECT seq, inning, home_half, batter, raw, kind, runs, rbis, outs, flagged, warning,
	       first_runner, second_runner, third_runner, outs_after, visitor_score, home_score
	FROM plays
	WHERE game_id = ?
	ORDER BY seq
	`

	rows, err := c.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("getting plays: %w", err)
	}
	defer rows.Close()

	var out []store.Play
	for rows.Next() {
		var p store.Play
		var home, flagged int
		err := rows.Scan(&p.Seq, &p.Inning, &home, &p.Batter, &p.Raw, &p.Kind,
			&p.Runs, &p.RBIs, &p.Outs, &flagged, &p.Warning,
			&p.First, &p.Second, &p.Third, &p.OutsAfter, &p.VisitorScore, &p.HomeScore)
		if err != nil {
			return nil, fmt.Errorf("scanning play row: %w", err)
		}
		p.Home = home != 0
		p.Flagged = flagged != 0
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating play rows: %w", err)
	}
	return out, nil
}

func (c *Client) ReplaceAnomalies(ctx context.Context, gameID string, anomalies []store.AnomalyInput) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM anomalies WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("clearing anomalies: %w", err)
	}
	for _, a := range anomalies {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO anomalies (game_id, seq, inning, raw, warning) VALUES (?, ?, ?, ?, ?)",
			gameID, a.Seq, a.Inning, a.Raw, a.Warning)
		if err != nil {
			return fmt.Errorf("inserting anomaly %d: %w", a.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing anomalies: %w", err)
	}
	return nil
}

func (c *Client) ListAnomalies(ctx context.Context, gameID string) ([]store.Anomaly, error) {
	query := `
	SELECT game_id, seq, inning, raw, warning
	FROM anomalies
	WHERE (? = '' OR game_id = ?)
	ORDER BY game_id, seq
	`

	rows, err := c.db.QueryContext(ctx, query, gameID, gameID)
	if err != nil {
		return nil, fmt.Errorf("listing anomalies: %w", err)
	}
	defer rows.Close()

	var out []store.Anomaly
	for rows.Next() {
		var a store.Anomaly
		if err := rows.Scan(&a.GameID, &a.Seq, &a.Inning, &a.Raw, &a.Warning); err != nil {
			return nil, fmt.Errorf("scanning anomaly row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating anomaly rows: %w", err)
	}
	return out, nil
}
