package sqlite

import (
	"context"
	"fmt"
	"strings"

	"scorebook/internal/store"
)

// SearchPlays runs an FTS5 match over raw descriptors and batter ids.
// Bare terms are quoted so descriptor punctuation does not read as FTS
// syntax.
func (c *Client) SearchPlays(ctx context.Context, query string, limit int) ([]store.PlaySearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = 25
	}

	rows, err := c.db.QueryContext(ctx, `
	SELECT game_id, seq, inning, batter, raw, kind
	FROM plays_fts
	WHERE plays_fts MATCH ?
	ORDER BY rank
	LIMIT ?
	`, ftsQuery(query), limit)
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

func ftsQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
