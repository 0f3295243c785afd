package main

import (
	"context"
	"fmt"
	"strings"

	"statline/internal/config"
	"statline/internal/store"
	"statline/internal/store/postgres"
	"statline/internal/store/sqlite"
)

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	dsn := cfg.Database.DSN
	switch {
	case strings.HasPrefix(dsn, "postgres://"):
		return postgres.New(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN scheme in %q", dsn)
	}
}
