package postgres

import (
	"context"
	"fmt"
	"strings"

	"scorebook/internal/store"
)

// SearchPlays matches raw descriptors and batter ids with a simple-config
// tsquery, mirroring the GIN index built by EnsureSchema.
func (c *Client) SearchPlays(ctx context.Context, query string, limit int) ([]store.PlaySearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = 25
	}

	rows, err := c.pool.Query(ctx, `
	SELECT game_id, seq, inning, batter, raw, kind
	FROM plays
	WHERE to_tsvector('simple', raw || ' ' || batter) @@ plainto_tsquery('simple', $1)
	ORDER BY game_id, seq
	LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching plays: %w", err)
	}
	defer rows.Close()

	var out []store.PlaySearchResult
	for rows.Next() {
		var r store.PlaySearchResult
		if err := rows.Scan(&r.GameID, &r.Seq, &r.Inning, &r.Batter, &r.Raw, &r.Kind); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search rows: %w", err)
	}
	return out, nil
}
