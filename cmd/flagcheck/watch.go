package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flagcheck/internal/report"
	"flagcheck/internal/validate"
	"flagcheck/internal/watch"
)

func watchCmd() *cobra.Command {
	var dir, tagFile string
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-check flags whenever the flag folder or tag file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(dir, tagFile, debounce)
		},
	}
	addTargetFlags(cmd, &dir, &tagFile)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-checking")
	return cmd
}

func runWatch(dir, tagFile string, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	out := report.NewPrinter(os.Stdout)
	check := func(ctx context.Context) {
		tagList, err := readTags(e, tagFile)
		if err != nil {
			out.Error("Error: %v", err)
			return
		}
		out.Heading("Flag Check " + time.Now().Format(time.TimeOnly))
		out.Validation(validate.Run(dir, tagList, e.cfg.Flags))
	}

	check(ctx)
	e.logger.Info("watching for changes", zap.String("dir", dir), zap.String("tags", tagFile))
	return watch.Run(ctx, watch.Options{
		Paths:    []string{dir, tagFile},
		Debounce: debounce,
		Logger:   e.logger,
	}, check)
}
