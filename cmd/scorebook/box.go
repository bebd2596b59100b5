package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scorebook/internal/boxscore"
	"scorebook/internal/config"
	"scorebook/internal/eventfile"
	"scorebook/internal/game"
)

func boxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "box <gameID>",
		Short: "Print the box score for a reconstructed game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBox(args[0])
		},
	}
}

func runBox(gameID string) error {
	ctx := context.Background()

	cfg, err := config.Load(config.DefaultFileName)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	stored, err := db.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("game %s not found; run ingest first", gameID)
	}

	// The box score is recomputed from the event file so per-batter lines
	// carry real identities rather than stored aggregates.
	ef, err := eventfile.ParseFile(stored.SourceFile)
	if err != nil {
		return err
	}
	var box *boxscore.BoxScore
	for _, pg := range ef.Games {
		if pg.ID == gameID {
			box = boxscore.Compute(game.New(pg))
			break
		}
	}
	if box == nil {
		return fmt.Errorf("game %s not present in %s", gameID, stored.SourceFile)
	}

	fmt.Fprintf(os.Stdout, "%s at %s, %s\n\n", box.VisitingTeam, box.HomeTeam, stored.Date)
	fmt.Fprint(os.Stdout, box.String())
	printBatters(box.VisitingTeam, box.Visitor)
	printBatters(box.HomeTeam, box.Home)
	return nil
}

func printBatters(team string, totals boxscore.TeamTotals) {
	fmt.Fprintf(os.Stdout, "\n%s batting (AB R H RBI):\n", team)
	for _, bl := range totals.Batters {
		fmt.Fprintf(os.Stdout, "  %-10s %2d %2d %2d %3d\n",
			bl.PlayerID, bl.AtBats, bl.Runs, bl.Hits, bl.RBIs)
	}
}
