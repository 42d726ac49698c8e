package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"flagcheck/internal/store"
)

func historyCmd() *cobra.Command {
	var limit int
	var showMissing bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded check runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(limit, showMissing)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&showMissing, "missing", false, "List the missing files of each run")
	return cmd
}

func runHistory(limit int, showMissing bool) error {
	ctx := context.Background()

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	if !e.cfg.History.Enabled() {
		return fmt.Errorf("history is disabled: set history.dsn in the config file")
	}

	db, err := openStore(ctx, e.cfg.History)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(os.Stdout, "%s  %s  %s  tags=%d missing=%d created=%d failed=%d%s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.ID,
			run.Directory,
			run.TagCount,
			len(run.Missing),
			run.Created,
			run.Failed,
			verifiedSuffix(run),
		)
		if showMissing {
			for _, name := range run.Missing {
				fmt.Fprintf(os.Stdout, "  - %s\n", name)
			}
		}
	}
	return nil
}

func verifiedSuffix(run store.Run) string {
	if !run.Verified {
		return ""
	}
	return fmt.Sprintf(" after=%d", run.MissingAfter)
}
