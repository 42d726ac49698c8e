package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"flagcheck/internal/config"
)

const defaultConfigName = config.DefaultPath

func loadConfig() (*config.ProjectConfig, error) {
	if configPath == "" {
		return config.LoadOrDefault(defaultConfigName, false)
	}
	return config.LoadOrDefault(configPath, true)
}

// newLogger writes console-encoded log lines to stderr so stdout stays
// reserved for reports.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

type env struct {
	cfg    *config.ProjectConfig
	logger *zap.Logger
}

func setup() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}
