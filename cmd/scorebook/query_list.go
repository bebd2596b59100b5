package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scorebook/internal/config"
	"scorebook/internal/store"
)

func queryListCmd() *cobra.Command {
	var team string
	var park string
	var date string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reconstructed games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryList(store.GameFilter{Team: team, Park: park, Date: date, Limit: limit})
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "Team on either side")
	cmd.Flags().StringVar(&park, "park", "", "Home team")
	cmd.Flags().StringVar(&date, "date", "", "Exact date, 2013/04/08")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of games")
	return cmd
}

func runQueryList(filter store.GameFilter) error {
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

	games, err := db.ListGames(ctx, filter)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games found.")
		return nil
	}

	for _, g := range games {
		line := fmt.Sprintf("%s  %s  %s %d, %s %d",
			g.ID, g.Date, g.VisitingTeam, g.VisitorScore, g.HomeTeam, g.HomeScore)
		if g.Anomalies > 0 {
			line += fmt.Sprintf("  (%d anomalies)", g.Anomalies)
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
