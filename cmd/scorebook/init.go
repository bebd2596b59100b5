package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scorebook/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new scorebook project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	if _, err := os.Stat(config.DefaultFileName); err == nil {
		return fmt.Errorf("%s already exists", config.DefaultFileName)
	}

	contents := fmt.Sprintf(`project: %s
version: 1

store:
  driver: sqlite
  dsn: sqlite://scorebook.db

seasons:
  - name: "2013"
    paths:
      - ./data/2013/

# filters:
#   team: SEA
#   date: 2013/04/08

ingest:
  workers: 0
`, projectName)

	if err := os.WriteFile(config.DefaultFileName, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultFileName, err)
	}
	return nil
}
