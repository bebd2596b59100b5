package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file the CLI looks for in the working
// directory.
const DefaultFileName = "scorebook.yaml"

type Config struct {
	Project string      `yaml:"project"`
	Version int         `yaml:"version"`
	Store   StoreConfig `yaml:"store"`
	Seasons []Season    `yaml:"seasons"`
	Filters Filters     `yaml:"filters"`
	Ingest  Ingest      `yaml:"ingest"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Season names one year of event files and the directories holding them.
type Season struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"`
}

// Filters narrow which games an ingest or query touches. Empty fields
// match everything.
type Filters struct {
	Team string `yaml:"team"`
	Park string `yaml:"park"`
	Date string `yaml:"date"`
}

type Ingest struct {
	// Workers bounds the number of games reconstructed concurrently.
	// Zero means one worker per CPU.
	Workers int `yaml:"workers"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	switch cfg.Store.Driver {
	case "sqlite", "postgres":
	case "":
		return fmt.Errorf("store driver is required")
	default:
		return fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if strings.TrimSpace(cfg.Store.DSN) == "" {
		return fmt.Errorf("store dsn is required")
	}
	if len(cfg.Seasons) == 0 {
		return fmt.Errorf("at least one season is required")
	}

	seen := make(map[string]struct{})
	for i, season := range cfg.Seasons {
		if strings.TrimSpace(season.Name) == "" {
			return fmt.Errorf("season %d name is required", i)
		}
		if len(season.Paths) == 0 {
			return fmt.Errorf("season %d paths are required", i)
		}
		if _, exists := seen[season.Name]; exists {
			return fmt.Errorf("duplicate season name: %s", season.Name)
		}
		seen[season.Name] = struct{}{}
	}

	if cfg.Ingest.Workers < 0 {
		return fmt.Errorf("ingest workers must not be negative")
	}
	return nil
}
