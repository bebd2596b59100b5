package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"scorebook/internal/config"
	"scorebook/internal/store"
	"scorebook/internal/store/postgres"
	"scorebook/internal/store/sqlite"
)

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return sqlite.New(ctx, cfg.Store.DSN)
	case "postgres":
		return postgres.New(ctx, cfg.Store.DSN)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
