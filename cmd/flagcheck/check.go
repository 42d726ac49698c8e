package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flagcheck/internal/report"
	"flagcheck/internal/store"
	"flagcheck/internal/tags"
	"flagcheck/internal/validate"
)

func checkCmd() *cobra.Command {
	var dir, tagFile string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report missing flag files without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(dir, tagFile)
		},
	}
	addTargetFlags(cmd, &dir, &tagFile)
	return cmd
}

func addTargetFlags(cmd *cobra.Command, dir, tagFile *string) {
	cmd.Flags().StringVar(dir, "dir", "", "Folder containing the flag files")
	cmd.Flags().StringVar(tagFile, "tags", "", "Path to countries.txt")
	_ = cmd.MarkFlagRequired("dir")
	_ = cmd.MarkFlagRequired("tags")
}

func runCheck(dir, tagFile string) error {
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

	result := validate.Run(dir, tagList, e.cfg.Flags)
	out.Validation(result)

	recordRun(ctx, e, store.Run{
		ID:        store.NewRunID(),
		StartedAt: started,
		Directory: dir,
		TagFile:   tagFile,
		TagCount:  len(tagList),
		Missing:   result.Missing,
	})

	if !result.Complete() {
		return fmt.Errorf("%d flag files missing", len(result.Missing))
	}
	return nil
}

func readTags(e *env, tagFile string) ([]string, error) {
	tagList, err := tags.ReadFile(tagFile)
	if err != nil {
		return nil, err
	}
	if len(tagList) == 0 {
		return nil, fmt.Errorf("no valid country tags found in %s", tagFile)
	}
	e.logger.Debug("read tags", zap.String("file", tagFile), zap.Int("count", len(tagList)))
	return tagList, nil
}
