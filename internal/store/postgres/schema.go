package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS flagcheck_runs (
    id            UUID PRIMARY KEY,
    started_at    TIMESTAMPTZ NOT NULL,
    directory     TEXT NOT NULL,
    tag_file      TEXT NOT NULL,
    tag_count     INTEGER NOT NULL DEFAULT 0,
    missing       TEXT[] NOT NULL DEFAULT '{}',
    created       INTEGER NOT NULL DEFAULT 0,
    failed        INTEGER NOT NULL DEFAULT 0,
    verified      BOOLEAN NOT NULL DEFAULT FALSE,
    missing_after INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_flagcheck_runs_started_at ON flagcheck_runs (started_at DESC);
CREATE INDEX IF NOT EXISTS idx_flagcheck_runs_directory ON flagcheck_runs (directory);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
