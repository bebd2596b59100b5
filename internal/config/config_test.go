package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validConfig = `project: mariners-2013
version: 1
store:
  driver: sqlite
  dsn: sqlite://scorebook.db
seasons:
  - name: "2013"
    paths: [data/2013]
filters:
  team: SEA
ingest:
  workers: 4
`

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "mariners-2013" {
			t.Fatalf("unexpected project %q", cfg.Project)
		}
		if cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "sqlite://scorebook.db" {
			t.Fatalf("unexpected store config: %+v", cfg.Store)
		}
		if len(cfg.Seasons) != 1 || cfg.Seasons[0].Name != "2013" {
			t.Fatalf("unexpected seasons: %+v", cfg.Seasons)
		}
		if cfg.Filters.Team != "SEA" || cfg.Ingest.Workers != 4 {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatalf("expected an error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := Load(writeConfig(t, "project: [\n")); err == nil {
			t.Fatalf("expected an error")
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name    string
			mangle  func(string) string
			message string
		}{
			{"missing project", func(s string) string {
				return strings.Replace(s, "project: mariners-2013", "project: \"\"", 1)
			}, "project name is required"},
			{"wrong version", func(s string) string {
				return strings.Replace(s, "version: 1", "version: 2", 1)
			}, "unsupported version"},
			{"bad driver", func(s string) string {
				return strings.Replace(s, "driver: sqlite", "driver: oracle", 1)
			}, "unsupported store driver"},
			{"missing dsn", func(s string) string {
				return strings.Replace(s, "dsn: sqlite://scorebook.db", "dsn: \"\"", 1)
			}, "store dsn is required"},
			{"no seasons", func(s string) string {
				return strings.Replace(s, "seasons:\n  - name: \"2013\"\n    paths: [data/2013]\n", "seasons: []\n", 1)
			}, "at least one season"},
			{"negative workers", func(s string) string {
				return strings.Replace(s, "workers: 4", "workers: -1", 1)
			}, "must not be negative"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := Load(writeConfig(t, tc.mangle(validConfig)))
				if err == nil || !strings.Contains(err.Error(), tc.message) {
					t.Fatalf("expected %q, got %v", tc.message, err)
				}
			})
		}
	})

	t.Run("duplicate season names", func(t *testing.T) {
		dup := strings.Replace(validConfig,
			"seasons:\n  - name: \"2013\"\n    paths: [data/2013]\n",
			"seasons:\n  - name: \"2013\"\n    paths: [a]\n  - name: \"2013\"\n    paths: [b]\n", 1)
		_, err := Load(writeConfig(t, dup))
		if err == nil || !strings.Contains(err.Error(), "duplicate season name") {
			t.Fatalf("expected duplicate season error, got %v", err)
		}
	})
}
