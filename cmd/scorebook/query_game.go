package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scorebook/internal/config"
)

func queryGameCmd() *cobra.Command {
	var showFlagged bool
	cmd := &cobra.Command{
		Use:   "game <gameID>",
		Short: "Print a game's play-by-play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryGame(args[0], showFlagged)
		},
	}
	cmd.Flags().BoolVar(&showFlagged, "flagged", false, "Only show flagged plays")
	return cmd
}

func runQueryGame(gameID string, showFlagged bool) error {
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

	g, err := db.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("game %s not found", gameID)
	}

	plays, err := db.GetPlays(ctx, gameID)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s: %s %d, %s %d (%s)\n",
		g.ID, g.VisitingTeam, g.VisitorScore, g.HomeTeam, g.HomeScore, g.Date)
	for _, p := range plays {
		if showFlagged && !p.Flagged {
			continue
		}
		half := "T"
		if p.Home {
			half = "B"
		}
		line := fmt.Sprintf("%s%d %-10s %-20s %s", half, p.Inning, p.Batter, p.Raw, p.Kind)
		if p.Runs > 0 {
			line += fmt.Sprintf(" runs=%d", p.Runs)
		}
		if p.Flagged {
			line += " [" + p.Warning + "]"
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
