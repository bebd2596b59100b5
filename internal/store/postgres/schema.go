package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id            TEXT PRIMARY KEY,
			visiting_team TEXT NOT NULL,
			home_team     TEXT NOT NULL,
			date          TEXT NOT NULL,
			site          TEXT NOT NULL DEFAULT '',
			use_dh        BOOLEAN NOT NULL DEFAULT FALSE,
			visitor_score INTEGER NOT NULL,
			home_score    INTEGER NOT NULL,
			source_file   TEXT NOT NULL DEFAULT '',
			run_id        TEXT NOT NULL DEFAULT '',
			last_ingested TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS plays (
			game_id       TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			seq           INTEGER NOT NULL,
			inning        INTEGER NOT NULL,
			home_half     BOOLEAN NOT NULL,
			batter        TEXT NOT NULL,
			raw           TEXT NOT NULL,
			kind          TEXT NOT NULL,
			runs          INTEGER NOT NULL,
			rbis          INTEGER NOT NULL,
			outs          INTEGER NOT NULL,
			flagged       BOOLEAN NOT NULL DEFAULT FALSE,
			warning       TEXT NOT NULL DEFAULT '',
			first_runner  TEXT NOT NULL DEFAULT '',
			second_runner TEXT NOT NULL DEFAULT '',
			third_runner  TEXT NOT NULL DEFAULT '',
			outs_after    INTEGER NOT NULL,
			visitor_score INTEGER NOT NULL,
			home_score    INTEGER NOT NULL,
			PRIMARY KEY (game_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS anomalies (
			game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			seq     INTEGER NOT NULL,
			inning  INTEGER NOT NULL,
			raw     TEXT NOT NULL,
			warning TEXT NOT NULL,
			PRIMARY KEY (game_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_date ON games (date)`,
		`CREATE INDEX IF NOT EXISTS idx_games_home ON games (home_team)`,
		`CREATE INDEX IF NOT EXISTS idx_games_visiting ON games (visiting_team)`,
		`CREATE INDEX IF NOT EXISTS idx_plays_kind ON plays (kind)`,
		`CREATE INDEX IF NOT EXISTS idx_plays_search ON plays
			USING GIN (to_tsvector('simple', raw || ' ' || batter))`,
	}

	for _, stmt := range statements {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}
	return nil
}
