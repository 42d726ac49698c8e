package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"flagcheck/internal/provision"
	"flagcheck/internal/report"
	"flagcheck/internal/store"
	"flagcheck/internal/validate"
)

func fixCmd() *cobra.Command {
	var dir, tagFile string
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Create every missing flag file from the template without prompting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(dir, tagFile)
		},
	}
	addTargetFlags(cmd, &dir, &tagFile)
	return cmd
}

func runFix(dir, tagFile string) error {
	ctx := context.Background()

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	started := time.Now().UTC()
	out := report.NewPrinter(os.Stdout)
	tagList, err := readTags(e, tagFile)
	if err != nil {
		return err
	}
	out.Tags(tagList)

	out.Heading("Initial Flag Check")
	initial := validate.Run(dir, tagList, e.cfg.Flags)
	out.Validation(initial)

	run := store.Run{
		ID:        store.NewRunID(),
		StartedAt: started,
		Directory: dir,
		TagFile:   tagFile,
		TagCount:  len(tagList),
		Missing:   initial.Missing,
	}
	defer func() { recordRun(ctx, e, run) }()

	if initial.Complete() {
		return nil
	}

	out.Heading("Creating Missing Flags")
	result, err := provision.Run(dir, initial.Missing, e.cfg.Flags, provision.Options{Logger: e.logger})
	if err != nil {
		return err
	}
	out.Provision(result)
	run.Created = len(result.Created())
	run.Failed = len(result.Failed())
	if !result.OK() {
		return fmt.Errorf("%d flag files could not be created", run.Failed)
	}

	out.Heading("Verification Flag Check")
	verification := validate.Run(dir, tagList, e.cfg.Flags)
	out.Validation(verification)
	run.Verified = true
	run.MissingAfter = len(verification.Missing)
	if !verification.Complete() {
		return fmt.Errorf("%d flag files still missing", run.MissingAfter)
	}
	return nil
}
