package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"flagcheck/internal/store"
)

func (c *Client) RecordRun(ctx context.Context, run store.Run) error {
	if run.ID == "" {
		run.ID = store.NewRunID()
	}
	missing := run.Missing
	if missing == nil {
		missing = []string{}
	}

	query := `
INSERT INTO flagcheck_runs (id, started_at, directory, tag_file, tag_count, missing, created, failed, verified, missing_after)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := c.pool.Exec(ctx, query,
		run.ID,
		run.StartedAt,
		run.Directory,
		run.TagFile,
		run.TagCount,
		missing,
		run.Created,
		run.Failed,
		run.Verified,
		run.MissingAfter,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

func (c *Client) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	query := `
SELECT id::text, started_at, directory, tag_file, tag_count, missing, created, failed, verified, missing_after
FROM flagcheck_runs
ORDER BY started_at DESC
LIMIT $1
`
	rows, err := c.pool.Query(ctx, query, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.Run, error) {
		var run store.Run
		err := row.Scan(
			&run.ID,
			&run.StartedAt,
			&run.Directory,
			&run.TagFile,
			&run.TagCount,
			&run.Missing,
			&run.Created,
			&run.Failed,
			&run.Verified,
			&run.MissingAfter,
		)
		return run, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning runs: %w", err)
	}
	return runs, nil
}
