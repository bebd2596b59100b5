package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scorebook/internal/config"
	"scorebook/internal/ingest"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Reconstruct configured seasons without writing, reporting anomalies",
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultFileName)
	if err != nil {
		return err
	}

	result := ingest.Scan(cfg, newLogger())

	fmt.Fprintf(os.Stdout, "Scanned %d files, %d games, %d plays.\n",
		result.Files, result.Games, result.Plays)

	if len(result.Anomalies) == 0 && len(result.Errors) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	if len(result.Anomalies) > 0 {
		fmt.Fprintf(os.Stdout, "\nAnomalies (%d):\n", len(result.Anomalies))
		for _, a := range result.Anomalies {
			fmt.Fprintf(os.Stdout, "  - %s play %d (inning %d): %s: %s\n",
				a.GameID, a.Seq, a.Inning, a.Raw, a.Warning)
		}
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("validation found errors")
	}

	return nil
}
