package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"flagcheck/internal/config"
	"flagcheck/internal/store"
	"flagcheck/internal/store/postgres"
	"flagcheck/internal/store/sqlite"
)

func openStore(ctx context.Context, cfg config.HistoryConfig) (store.Store, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	var (
		db  store.Store
		err error
	)
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		db, err = sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err = postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported history DSN %q: expected sqlite:// or postgres://", dsn)
	}
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}
	return db, nil
}

// recordRun stores run when history is configured. History problems are
// logged and never fail the check itself.
func recordRun(ctx context.Context, e *env, run store.Run) {
	if !e.cfg.History.Enabled() {
		return
	}
	db, err := openStore(ctx, e.cfg.History)
	if err != nil {
		e.logger.Warn("opening history store", zap.Error(err))
		return
	}
	defer db.Close(ctx)

	if err := db.RecordRun(ctx, run); err != nil {
		e.logger.Warn("recording run", zap.Error(err))
		return
	}
	e.logger.Debug("recorded run", zap.String("id", run.ID))
}
