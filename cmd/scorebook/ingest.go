package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scorebook/internal/config"
	"scorebook/internal/ingest"
)

var ingestWorkers int

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Reconstruct configured seasons and write them to the store",
		RunE:  runIngest,
	}
	cmd.Flags().IntVar(&ingestWorkers, "workers", 0, "Concurrent game reconstructions (0 = one per CPU)")
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
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

	result, err := ingest.Run(ctx, cfg, db, newLogger(), ingest.Options{Workers: ingestWorkers})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Ingestion complete.")
	fmt.Fprintf(os.Stdout, "  Run id:    %s\n", result.RunID)
	fmt.Fprintf(os.Stdout, "  Files:     %d\n", result.Files)
	fmt.Fprintf(os.Stdout, "  Games:     %d\n", result.Games)
	fmt.Fprintf(os.Stdout, "  Plays:     %d\n", result.Plays)
	fmt.Fprintf(os.Stdout, "  Anomalies: %d\n", result.Anomalies)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("ingestion completed with errors")
	}

	return nil
}
