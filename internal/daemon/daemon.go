package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"tubeconv/internal/config"
	"tubeconv/internal/fileutil"
	"tubeconv/internal/history"
	"tubeconv/internal/logging"
	"tubeconv/internal/media/ytdlp"
	"tubeconv/internal/pipeline"
	"tubeconv/internal/preflight"
	"tubeconv/internal/retention"
	"tubeconv/internal/server"
)

// Daemon owns the long-running services and enforces single-instance
// execution through a file lock.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger

	historyDB *history.Store
	sweeper   *retention.Sweeper
	srv       *server.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Address      string
	WorkDir      string
	LockFilePath string
	HistoryPath  string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	if err := fileutil.EnsureDir(cfg.Paths.DownloadDir); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}

	var historyDB *history.Store
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history ledger: %w", err)
		}
		historyDB = store
	}

	invoker, err := ytdlp.New(cfg.Pipeline.YtdlpBinary, cfg.Pipeline.FetchTimeoutSeconds)
	if err != nil {
		if historyDB != nil {
			_ = historyDB.Close()
		}
		return nil, fmt.Errorf("configure yt-dlp client: %w", err)
	}
	var recorder pipeline.Recorder
	if historyDB != nil {
		recorder = historyDB
	}
	pipe := pipeline.New(cfg, invoker, recorder, logger)

	sweeper := retention.New(
		cfg.Paths.DownloadDir,
		time.Duration(cfg.Retention.MaxAgeHours)*time.Hour,
		time.Duration(cfg.Retention.SweepIntervalHours)*time.Hour,
		logger,
	)

	handler := server.NewHandler(pipe, cfg.Server.BaseURL, historyDB, sweeper, logger)
	srv := server.New(cfg.Server.Bind, handler, logger)

	lockPath := filepath.Join(cfg.Paths.LogDir, "tubeconv.lock")
	return &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		historyDB: historyDB,
		sweeper:   sweeper,
		srv:       srv,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock, runs preflight checks, and launches the
// sweeper and HTTP server. It returns once the listener is bound.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := fileutil.EnsureDir(d.cfg.Paths.LogDir); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another tubeconv instance is already running")
	}

	for _, status := range preflight.CheckBinaries(preflight.Requirements(d.cfg.Pipeline.YtdlpBinary)) {
		switch {
		case status.Available:
			d.logger.Info("dependency available", logging.String("binary", status.Command))
		case status.Optional:
			d.logger.Warn("optional dependency missing",
				logging.String("binary", status.Command),
				logging.String("detail", status.Detail),
			)
		default:
			_ = d.lock.Unlock()
			return fmt.Errorf("dependency check failed for %s: %s", status.Name, status.Detail)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.srv.Start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start http server: %w", err)
	}
	go d.sweeper.Run(runCtx)

	d.cancel = cancel
	d.running.Store(true)
	d.logger.Info("tubeconv daemon started",
		logging.String("address", d.srv.Addr()),
		logging.String("work_dir", d.cfg.Paths.DownloadDir),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Addr returns the bound HTTP address, or "" before Start.
func (d *Daemon) Addr() string { return d.srv.Addr() }

// Status reports current runtime information.
func (d *Daemon) Status() Status {
	status := Status{
		Running:      d.running.Load(),
		Address:      d.srv.Addr(),
		WorkDir:      d.cfg.Paths.DownloadDir,
		LockFilePath: d.lockPath,
	}
	if d.historyDB != nil {
		status.HistoryPath = d.historyDB.Path()
	}
	return status
}

// Stop shuts down background services and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.srv.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release instance lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("tubeconv daemon stopped")
}

// Close stops the daemon and releases held resources.
func (d *Daemon) Close() error {
	d.Stop()
	if d.historyDB != nil {
		return d.historyDB.Close()
	}
	return nil
}
