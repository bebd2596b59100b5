package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scorebook/internal/config"
)

func querySearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search play descriptors and batter ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuerySearch(args[0], limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum number of results")
	return cmd
}

func runQuerySearch(query string, limit int) error {
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

	results, err := db.SearchPlays(ctx, query, limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%s play %d (inning %d): %s %s (%s)\n",
			r.GameID, r.Seq, r.Inning, r.Batter, r.Raw, r.Kind)
	}
	return nil
}
