package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tubeconv/internal/config"
	"tubeconv/internal/history"
	"tubeconv/internal/logging"
	"tubeconv/internal/media"
	"tubeconv/internal/media/ytdlp"
	"tubeconv/internal/metrics"
	"tubeconv/internal/preflight"
	"tubeconv/internal/services"
)

// Invoker runs the external extraction tool. Satisfied by *ytdlp.Client.
type Invoker interface {
	Fetch(ctx context.Context, sourceURL string, format media.Format, outputTemplate string) error
}

// Recorder appends completed conversions to the history ledger.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Result describes a finished conversion.
type Result struct {
	JobID     string
	Filename  string
	Path      string
	SizeBytes int64
	Elapsed   time.Duration
}

// Pipeline turns a validated conversion request into an artifact in the
// working directory. Jobs are independent: the uuid filename prefix prevents
// collisions and doubles as the log correlation tag.
type Pipeline struct {
	workDir   string
	minFreeMB int64
	invoker   Invoker
	recorder  Recorder
	logger    *slog.Logger
	sem       chan struct{}
}

// New constructs a pipeline. recorder may be nil when history is disabled.
func New(cfg *config.Config, invoker Invoker, recorder Recorder, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		workDir:   cfg.Paths.DownloadDir,
		minFreeMB: cfg.Pipeline.MinFreeMB,
		invoker:   invoker,
		recorder:  recorder,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		sem:       make(chan struct{}, cfg.Pipeline.MaxConcurrent),
	}
}

// WorkDir returns the shared working directory artifacts are written to.
func (p *Pipeline) WorkDir() string { return p.workDir }

// Convert validates the request, runs yt-dlp under a bounded worker slot,
// and resolves the produced artifact. It blocks for the duration of the
// external process; callers that must not tie the process lifetime to a
// client connection should pass a detached context.
func (p *Pipeline) Convert(ctx context.Context, sourceURL string, format media.Format) (Result, error) {
	start := time.Now()

	if !media.IsWatchURL(sourceURL) {
		return Result{}, services.Wrap(services.ErrInvalidInput, "pipeline", "validate",
			"not a recognized watch url", nil)
	}

	jobID := uuid.NewString()
	ctx = services.WithRequestID(ctx, jobID[:8])
	logger := logging.WithContext(ctx, p.logger)

	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-ctx.Done():
		return Result{}, services.Wrap(services.ErrTimeout, "pipeline", "admit",
			"no worker slot became available", ctx.Err())
	}

	if err := preflight.CheckFreeSpace(p.workDir, p.minFreeMB); err != nil {
		logger.Error("refusing conversion", logging.Error(err))
		return Result{}, services.Wrap(services.ErrInternal, "pipeline", "preflight",
			"working directory out of space", err)
	}

	metrics.InflightConversions.Inc()
	defer metrics.InflightConversions.Dec()

	logger.Info("starting conversion",
		logging.String(logging.FieldFormat, format.String()),
		logging.String("source_url", sourceURL),
	)

	template := filepath.Join(p.workDir, jobID+".%(ext)s")
	if err := p.invoker.Fetch(ctx, sourceURL, format, template); err != nil {
		metrics.ConversionsTotal.WithLabelValues(format.String(), "failure").Inc()
		logger.Error("fetch failed", logging.Error(err))
		if errors.Is(err, ytdlp.ErrFetchTimeout) {
			return Result{}, services.Wrap(services.ErrTimeout, "pipeline", "fetch", "", err)
		}
		return Result{}, services.Wrap(services.ErrExternalTool, "pipeline", "fetch", "", err)
	}

	artifact, err := ResolveArtifact(p.workDir, jobID)
	if err != nil {
		metrics.ConversionsTotal.WithLabelValues(format.String(), "failure").Inc()
		logger.Error("fetch reported success but no artifact found", logging.Error(err))
		return Result{}, services.Wrap(services.ErrArtifactMissing, "pipeline", "resolve", "", err)
	}

	elapsed := time.Since(start)
	metrics.ConversionsTotal.WithLabelValues(format.String(), "success").Inc()
	metrics.ConversionSeconds.Observe(elapsed.Seconds())

	if p.recorder != nil {
		entry := history.Entry{
			JobID:     jobID,
			SourceURL: sourceURL,
			Format:    format.String(),
			Filename:  artifact.Filename,
			SizeBytes: artifact.SizeBytes,
			Duration:  elapsed,
		}
		if err := p.recorder.Record(ctx, entry); err != nil {
			logger.Warn("failed to record conversion history", logging.Error(err))
		}
	}

	logger.Info("conversion complete",
		logging.String(logging.FieldFilename, artifact.Filename),
		logging.Int64("size_bytes", artifact.SizeBytes),
		logging.Duration("elapsed", elapsed),
	)

	return Result{
		JobID:     jobID,
		Filename:  artifact.Filename,
		Path:      artifact.Path,
		SizeBytes: artifact.SizeBytes,
		Elapsed:   elapsed,
	}, nil
}
