package ingest

import (
	"fmt"

	"github.com/rs/zerolog"

	"scorebook/internal/config"
	"scorebook/internal/eventfile"
	"scorebook/internal/store"
)

type ScanResult struct {
	Files     int
	Games     int
	Plays     int
	Anomalies []store.Anomaly
	Errors    []error
}

// Scan is the store-free reconstruction pass behind the validate command:
// every configured game is folded and anomalies reported, nothing is
// written.
func Scan(cfg *config.Config, logger zerolog.Logger) *ScanResult {
	result := &ScanResult{}
	filter := eventfile.Filter{
		Team: cfg.Filters.Team,
		Park: cfg.Filters.Park,
		Date: cfg.Filters.Date,
	}

	for _, season := range cfg.Seasons {
		for _, root := range season.Paths {
			files, err := eventfile.WalkDir(root)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("season %s: %w", season.Name, err))
				continue
			}
			for _, path := range files {
				ef, err := eventfile.ParseFile(path)
				if err != nil {
					result.Errors = append(result.Errors, err)
					continue
				}
				result.Files++

				for _, pg := range filter.Select(ef) {
					_, plays, anomalies := Reconstruct(pg, "", path)
					result.Games++
					result.Plays += len(plays)
					for _, a := range anomalies {
						logger.Warn().
							Str("game", pg.ID).
							Int("seq", a.Seq).
							Str("play", a.Raw).
							Msg(a.Warning)
						result.Anomalies = append(result.Anomalies, store.Anomaly{
							GameID:  pg.ID,
							Seq:     a.Seq,
							Inning:  a.Inning,
							Raw:     a.Raw,
							Warning: a.Warning,
						})
					}
				}
			}
		}
	}
	return result
}
