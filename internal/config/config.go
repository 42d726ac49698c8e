package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "flagcheck.yaml"

type ProjectConfig struct {
	Version int           `yaml:"version"`
	Flags   FlagLayout    `yaml:"flags"`
	History HistoryConfig `yaml:"history"`
}

type HistoryConfig struct {
	DSN string `yaml:"dsn"`
}

func (h HistoryConfig) Enabled() bool {
	return strings.TrimSpace(h.DSN) != ""
}

var templatePattern = regexp.MustCompile(`^[A-Z0-9]{1,3}$`)

// Default returns the layout used by the Mars Revolutions gfx/flags folder.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Version: 1,
		Flags:   DefaultLayout(),
	}
}

func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.Flags.applyDefaults()

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault falls back to Default when path does not exist and was not
// named explicitly by the user.
func LoadOrDefault(path string, explicit bool) (*ProjectConfig, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	return cfg.Flags.Validate()
}

func (l FlagLayout) Validate() error {
	if !strings.HasPrefix(l.Extension, ".") || len(l.Extension) < 2 {
		return fmt.Errorf("flags extension must start with '.': %q", l.Extension)
	}
	if strings.ContainsAny(l.Extension, `/\`) {
		return fmt.Errorf("flags extension must not contain path separators: %q", l.Extension)
	}
	if !templatePattern.MatchString(l.Template) {
		return fmt.Errorf("flags template must be 1-3 characters from [A-Z0-9]: %q", l.Template)
	}
	if len(l.Variants) == 0 {
		return fmt.Errorf("at least one flag variant is required")
	}

	seen := make(map[string]struct{})
	for i, variant := range l.Variants {
		if strings.ContainsAny(variant, `/\`) {
			return fmt.Errorf("variant %d must not contain path separators: %q", i, variant)
		}
		key := strings.ToLower(variant)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate variant: %q", variant)
		}
		seen[key] = struct{}{}
	}

	return nil
}
