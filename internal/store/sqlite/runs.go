package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flagcheck/internal/store"
)

// timeLayout has fixed-width fractions so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (c *Client) RecordRun(ctx context.Context, run store.Run) error {
	if run.ID == "" {
		run.ID = store.NewRunID()
	}
	missing := run.Missing
	if missing == nil {
		missing = []string{}
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return fmt.Errorf("marshaling missing flags: %w", err)
	}

	query := `
	INSERT INTO runs (id, started_at, directory, tag_file, tag_count, missing, created, failed, verified, missing_after)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = c.db.ExecContext(ctx, query,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.Directory,
		run.TagFile,
		run.TagCount,
		string(missingJSON),
		run.Created,
		run.Failed,
		boolToInt(run.Verified),
		run.MissingAfter,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

func (c *Client) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	query := `
	SELECT id, started_at, directory, tag_file, tag_count, missing, created, failed, verified, missing_after
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?
	`

	rows, err := c.db.QueryContext(ctx, query, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]store.Run, 0)
	for rows.Next() {
		var (
			run         store.Run
			startedAt   string
			missingJSON string
			verified    int
		)
		if err := rows.Scan(
			&run.ID,
			&startedAt,
			&run.Directory,
			&run.TagFile,
			&run.TagCount,
			&missingJSON,
			&run.Created,
			&run.Failed,
			&verified,
			&run.MissingAfter,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run time %q: %w", startedAt, err)
		}
		if err := json.Unmarshal([]byte(missingJSON), &run.Missing); err != nil {
			return nil, fmt.Errorf("unmarshaling missing flags: %w", err)
		}
		run.Verified = verified != 0
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
