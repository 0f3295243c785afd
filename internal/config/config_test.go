package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, "statline.yaml", "project: afl\nversion: 1\ndatabase:\n  dsn: \"sqlite://:memory:\"\nseasons:\n  first: 1990\n  last: 2025\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "afl" {
			t.Fatalf("unexpected project: %q", cfg.Project)
		}
		if cfg.Seasons.Last != 2025 {
			t.Fatalf("unexpected seasons: %+v", cfg.Seasons)
		}
	})

	t.Run("seasons default when omitted", func(t *testing.T) {
		path := writeFile(t, "statline.yaml", "project: afl\nversion: 1\ndatabase:\n  dsn: postgres://localhost/statline\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Seasons.First != 1990 || cfg.Seasons.Last != 2025 {
			t.Fatalf("unexpected default seasons: %+v", cfg.Seasons)
		}
	})

	t.Run("missing dsn", func(t *testing.T) {
		path := writeFile(t, "statline.yaml", "project: afl\nversion: 1\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad dsn scheme", func(t *testing.T) {
		path := writeFile(t, "statline.yaml", "project: afl\nversion: 1\ndatabase:\n  dsn: mysql://nope\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeFile(t, "statline.yaml", "project: afl\nversion: 2\ndatabase:\n  dsn: sqlite://stats.db\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("inverted seasons", func(t *testing.T) {
		path := writeFile(t, "statline.yaml", "project: afl\nversion: 1\ndatabase:\n  dsn: sqlite://stats.db\nseasons:\n  first: 2025\n  last: 1990\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}
