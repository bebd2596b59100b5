package ingest

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"scorebook/internal/config"
	"scorebook/internal/eventfile"
	"scorebook/internal/store"
)

type Result struct {
	RunID     string
	Files     int
	Games     int
	Plays     int
	Anomalies int
	Errors    []error
}

type Options struct {
	// Workers bounds concurrent game reconstructions; zero means one per
	// CPU.
	Workers int
}

// Run walks every configured season, reconstructs each game that passes
// the filters, and writes games, plays and anomalies to the store. Games
// are independent folds, so they run concurrently; per-file and per-game
// failures are accumulated, never fatal.
func Run(ctx context.Context, cfg *config.Config, db store.Store, logger zerolog.Logger, options Options) (*Result, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	workers := options.Workers
	if workers == 0 {
		workers = cfg.Ingest.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	result := &Result{RunID: uuid.NewString()}
	filter := eventfile.Filter{
		Team: cfg.Filters.Team,
		Park: cfg.Filters.Park,
		Date: cfg.Filters.Date,
	}

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, season := range cfg.Seasons {
		for _, root := range season.Paths {
			files, err := eventfile.WalkDir(root)
			if err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Errorf("season %s: %w", season.Name, err))
				mu.Unlock()
				continue
			}
			for _, path := range files {
				ef, err := eventfile.ParseFile(path)
				if err != nil {
					mu.Lock()
					result.Errors = append(result.Errors, err)
					mu.Unlock()
					continue
				}
				mu.Lock()
				result.Files++
				mu.Unlock()

				for _, pg := range filter.Select(ef) {
					group.Go(func() error {
						gameIn, plays, anomalies := Reconstruct(pg, result.RunID, path)
						for _, a := range anomalies {
							logger.Warn().
								Str("game", pg.ID).
								Int("seq", a.Seq).
								Str("play", a.Raw).
								Msg(a.Warning)
						}

						if err := writeGame(ctx, db, gameIn, plays, anomalies); err != nil {
							mu.Lock()
							result.Errors = append(result.Errors, fmt.Errorf("game %s: %w", pg.ID, err))
							mu.Unlock()
							return nil
						}

						mu.Lock()
						result.Games++
						result.Plays += len(plays)
						result.Anomalies += len(anomalies)
						mu.Unlock()
						return nil
					})
				}
			}
		}
	}

	if err := group.Wait(); err != nil {
		return result, err
	}

	logger.Info().
		Str("run", result.RunID).
		Int("files", result.Files).
		Int("games", result.Games).
		Int("plays", result.Plays).
		Int("anomalies", result.Anomalies).
		Int("errors", len(result.Errors)).
		Msg("ingest complete")
	return result, nil
}

func writeGame(ctx context.Context, db store.Store, g store.GameInput, plays []store.PlayInput, anomalies []store.AnomalyInput) error {
	if err := db.UpsertGame(ctx, g); err != nil {
		return err
	}
	if err := db.ReplacePlays(ctx, g.ID, plays); err != nil {
		return err
	}
	return db.ReplaceAnomalies(ctx, g.ID, anomalies)
}
