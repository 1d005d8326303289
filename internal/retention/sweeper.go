package retention

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"tubeconv/internal/logging"
	"tubeconv/internal/metrics"
)

// Sweeper deletes working-directory entries older than a fixed age on a
// recurring schedule, independent of whether they were ever downloaded.
type Sweeper struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	logger   *slog.Logger

	sweeps       atomic.Int64
	totalDeleted atomic.Int64
}

// New constructs a sweeper over dir.
func New(dir string, maxAge, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
		logger:   logging.NewComponentLogger(logger, "retention"),
	}
}

// Run sweeps once immediately, then on every interval tick until ctx is
// done. The immediate sweep clears stale files left by a previous process
// lifetime.
func (s *Sweeper) Run(ctx context.Context) {
	s.SweepOnce()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce deletes every file in the working directory whose last-modified
// time is older than the max age and returns the number deleted. Individual
// deletion failures are logged and swallowed; a file that is already gone is
// not an error.
func (s *Sweeper) SweepOnce() int {
	cutoff := time.Now().Add(-s.maxAge)
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("sweep skipped; cannot list working directory", logging.Error(err))
		return 0
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			s.logger.Warn("failed to delete expired artifact",
				logging.String(logging.FieldFilename, entry.Name()),
				logging.Error(err),
			)
			continue
		}
		deleted++
		s.logger.Debug("deleted expired artifact",
			logging.String(logging.FieldFilename, entry.Name()),
			logging.Duration("age", time.Since(info.ModTime())),
		)
	}

	s.sweeps.Add(1)
	s.totalDeleted.Add(int64(deleted))
	metrics.SweptFilesTotal.Add(float64(deleted))
	s.logger.Info("retention sweep complete", logging.Int("deleted", deleted))
	return deleted
}

// Stats reports lifetime sweep counters for the stats endpoint.
func (s *Sweeper) Stats() (sweeps, deleted int64) {
	return s.sweeps.Load(), s.totalDeleted.Load()
}
