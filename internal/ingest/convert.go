package ingest

import (
	"scorebook/internal/eventfile"
	"scorebook/internal/game"
	"scorebook/internal/store"
)

// Reconstruct folds one proto game into store rows. Flagged snapshots
// become plays and anomalies both, so the play-by-play stays complete.
func Reconstruct(pg *eventfile.ProtoGame, runID, sourceFile string) (store.GameInput, []store.PlayInput, []store.AnomalyInput) {
	g := game.New(pg)

	var plays []store.PlayInput
	var anomalies []store.AnomalyInput
	for snap := range g.Snapshots() {
		row := store.PlayInput{
			Seq:     snap.PlayNumber,
			Inning:  snap.Inning,
			Home:    snap.Home,
			Batter:  snap.Batter,
			Raw:     snap.Raw,
			Runs:    len(snap.Outcome.Runs),
			RBIs:    snap.Outcome.RBIs(),
			Outs:    snap.Outcome.Outs,
			Flagged: snap.Flagged,
			Warning: snap.Warning,

			First:        snap.State.First,
			Second:       snap.State.Second,
			Third:        snap.State.Third,
			OutsAfter:    snap.State.Outs,
			VisitorScore: snap.State.VisitorScore,
			HomeScore:    snap.State.HomeScore,
		}
		if snap.Descriptor != nil {
			row.Kind = snap.Descriptor.Kind.String()
		}
		plays = append(plays, row)

		if snap.Flagged {
			anomalies = append(anomalies, store.AnomalyInput{
				Seq:     snap.PlayNumber,
				Inning:  snap.Inning,
				Raw:     snap.Raw,
				Warning: snap.Warning,
			})
		}
	}

	visitor, home := g.FinalScore()
	return store.GameInput{
		ID:           pg.ID,
		VisitingTeam: pg.VisitingTeam,
		HomeTeam:     pg.HomeTeam,
		Date:         pg.Date,
		Site:         pg.Site,
		UseDH:        pg.UseDH,
		VisitorScore: visitor,
		HomeScore:    home,
		SourceFile:   sourceFile,
		RunID:        runID,
	}, plays, anomalies
}
