package testsupport

import (
	"path/filepath"
	"testing"

	"tubeconv/internal/config"
	"tubeconv/internal/fileutil"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The free-space floor is disabled so temp filesystems never fail preflight.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Server.Bind = "127.0.0.1:0"
	cfg.Paths.DownloadDir = filepath.Join(base, "downloads")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Pipeline.MinFreeMB = 0
	cfg.History.Enabled = false
	cfg.History.Path = filepath.Join(base, "history.db")

	if err := fileutil.EnsureDir(cfg.Paths.DownloadDir); err != nil {
		t.Fatalf("create download dir: %v", err)
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMaxConcurrent overrides the pipeline worker pool size.
func WithMaxConcurrent(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Pipeline.MaxConcurrent = n
	}
}

// WithHistoryEnabled turns the conversion ledger on for the test.
func WithHistoryEnabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Enabled = true
	}
}

// WithRetention overrides the sweeper interval and max age.
func WithRetention(sweepIntervalHours, maxAgeHours int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Retention.SweepIntervalHours = sweepIntervalHours
		cfg.Retention.MaxAgeHours = maxAgeHours
	}
}
