package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Seasons  SeasonRange    `yaml:"seasons"`
	Aliases  string         `yaml:"aliases"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SeasonRange bounds the data the store is expected to hold. Used by the
// validate command to flag stat lines outside the range.
type SeasonRange struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	dsn := strings.TrimSpace(cfg.Database.DSN)
	if dsn == "" {
		return fmt.Errorf("database dsn is required")
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "sqlite://") {
		return fmt.Errorf("unsupported database dsn scheme: %s", dsn)
	}
	if cfg.Seasons.First == 0 && cfg.Seasons.Last == 0 {
		cfg.Seasons = SeasonRange{First: 1990, Last: 2025}
	}
	if cfg.Seasons.First > cfg.Seasons.Last {
		return fmt.Errorf("seasons range is inverted: %d..%d", cfg.Seasons.First, cfg.Seasons.Last)
	}
	return nil
}
