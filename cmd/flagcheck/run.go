package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"flagcheck/internal/session"
)

func runCmd() *cobra.Command {
	var dir, tagFile string
	var yes bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Interactively check flags and offer to create the missing ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(dir, tagFile, yes)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Folder containing the flag files (prompted when empty)")
	cmd.Flags().StringVar(&tagFile, "tags", "", "Path to countries.txt (prompted when empty)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Create missing flags without asking")
	return cmd
}

func runSession(dir, tagFile string, yes bool) error {
	ctx := context.Background()

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	s := &session.Session{
		In:        os.Stdin,
		Out:       os.Stdout,
		Layout:    e.cfg.Flags,
		Logger:    e.logger,
		Directory: dir,
		TagFile:   tagFile,
		AssumeYes: yes,
	}
	summary, err := s.Run(ctx)
	if err != nil {
		return err
	}
	if len(summary.Tags) > 0 {
		recordRun(ctx, e, summary.Record())
	}
	return nil
}
