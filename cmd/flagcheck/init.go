package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"flagcheck/internal/config"
)

func initCmd() *cobra.Command {
	var historyDSN string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + defaultConfigName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = defaultConfigName
			}
			return runInit(path, historyDSN, force)
		},
	}
	cmd.Flags().StringVar(&historyDSN, "history", "", "History DSN, e.g. sqlite://flagcheck.db")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func runInit(path, historyDSN string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.Default()
	cfg.History.DSN = historyDSN
	contents, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
	return nil
}
