package store

import "context"

// Store persists reconstructed games and answers the query surface. Both
// backends implement the same interface; callers never see driver types.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	UpsertGame(ctx context.Context, g GameInput) error
	ReplacePlays(ctx context.Context, gameID string, plays []PlayInput) error
	ReplaceAnomalies(ctx context.Context, gameID string, anomalies []AnomalyInput) error

	GetGame(ctx context.Context, id string) (*Game, error)
	ListGames(ctx context.Context, f GameFilter) ([]GameSummary, error)
	GetPlays(ctx context.Context, gameID string) ([]Play, error)
	SearchPlays(ctx context.Context, query string, limit int) ([]PlaySearchResult, error)
	ListAnomalies(ctx context.Context, gameID string) ([]Anomaly, error)
}
