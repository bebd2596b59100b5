package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS games (
		id            TEXT PRIMARY KEY,
		visiting_team TEXT NOT NULL,
		home_team     TEXT NOT NULL,
		date          TEXT NOT NULL,
		site          TEXT DEFAULT '',
		use_dh        INTEGER DEFAULT 0,
		visitor_score INTEGER NOT NULL,
		home_score    INTEGER NOT NULL,
		source_file   TEXT DEFAULT '',
		run_id        TEXT DEFAULT '',
		last_ingested TEXT DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS plays (
		game_id       TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		seq           INTEGER NOT NULL,
		inning        INTEGER NOT NULL,
		home_half     INTEGER NOT NULL,
		batter        TEXT NOT NULL,
		raw           TEXT NOT NULL,
		kind          TEXT NOT NULL,
		runs          INTEGER NOT NULL,
		rbis          INTEGER NOT NULL,
		outs          INTEGER NOT NULL,
		flagged       INTEGER NOT NULL DEFAULT 0,
		warning       TEXT DEFAULT '',
		first_runner  TEXT DEFAULT '',
		second_runner TEXT DEFAULT '',
		third_runner  TEXT DEFAULT '',
		outs_after    INTEGER NOT NULL,
		visitor_score INTEGER NOT NULL,
		home_score    INTEGER NOT NULL,
		PRIMARY KEY (game_id, seq)
	);

	CREATE TABLE IF NOT EXISTS anomalies (
		game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		seq     INTEGER NOT NULL,
		inning  INTEGER NOT NULL,
		raw     TEXT NOT NULL,
		warning TEXT NOT NULL,
		PRIMARY KEY (game_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_games_date ON games (date);
	CREATE INDEX IF NOT EXISTS idx_games_home ON games (home_team);
	CREATE INDEX IF NOT EXISTS idx_games_visiting ON games (visiting_team);
	CREATE INDEX IF NOT EXISTS idx_plays_kind ON plays (kind);
	CREATE INDEX IF NOT EXISTS idx_plays_flagged ON plays (flagged) WHERE flagged = 1;

	CREATE VIRTUAL TABLE IF NOT EXISTS plays_fts USING fts5(
		raw,
		batter,
		game_id UNINDEXED,
		seq UNINDEXED,
		inning UNINDEXED,
		kind UNINDEXED
	);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
