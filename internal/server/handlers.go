package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tubeconv/internal/fileutil"
	"tubeconv/internal/history"
	"tubeconv/internal/logging"
	"tubeconv/internal/media"
	"tubeconv/internal/media/ytdlp"
	"tubeconv/internal/metrics"
	"tubeconv/internal/pipeline"
	"tubeconv/internal/retention"
	"tubeconv/internal/services"
)

// Converter runs a conversion request through the pipeline. Satisfied by
// *pipeline.Pipeline.
type Converter interface {
	Convert(ctx context.Context, sourceURL string, format media.Format) (pipeline.Result, error)
	WorkDir() string
}

// Handler holds the HTTP endpoints and their collaborators.
type Handler struct {
	converter Converter
	baseURL   string
	historyDB *history.Store
	sweeper   *retention.Sweeper
	logger    *slog.Logger
}

// NewHandler constructs the endpoint set. historyDB and sweeper may be nil;
// the stats endpoint reports whatever is available.
func NewHandler(converter Converter, baseURL string, historyDB *history.Store, sweeper *retention.Sweeper, logger *slog.Logger) *Handler {
	return &Handler{
		converter: converter,
		baseURL:   baseURL,
		historyDB: historyDB,
		sweeper:   sweeper,
		logger:    logging.NewComponentLogger(logger, "handler"),
	}
}

type downloadRequest struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

type downloadResponse struct {
	Success        bool   `json:"success"`
	Format         string `json:"format"`
	DownloadLink   string `json:"downloadLink"`
	FileSize       string `json:"fileSize"`
	ProcessingTime string `json:"processingTime"`
}

// Download accepts a conversion request and blocks until the artifact is
// ready. The pipeline runs on a context detached from the request so an
// impatient client cannot abort a conversion mid-flight.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "A valid YouTube URL is required")
		return
	}

	format, err := media.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Format must be mp3 or mp4")
		return
	}

	if !media.IsWatchURL(req.URL) {
		writeError(w, http.StatusBadRequest, "Please enter a valid YouTube URL")
		return
	}

	result, err := h.converter.Convert(context.WithoutCancel(r.Context()), req.URL, format)
	if err != nil {
		writeError(w, services.HTTPStatus(err), h.userMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, downloadResponse{
		Success:        true,
		Format:         format.String(),
		DownloadLink:   h.downloadLink(r, result.Filename),
		FileSize:       fileutil.FormatSizeMB(result.SizeBytes),
		ProcessingTime: fmt.Sprintf("%.2f seconds", result.Elapsed.Seconds()),
	})
}

// ServeArtifact streams a finished artifact to the client and deletes it
// afterwards. Each conversion is downloadable once.
func (h *Handler) ServeArtifact(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		writeError(w, http.StatusBadRequest, "No filename provided")
		return
	}
	if !fileutil.SafeFilename(filename) {
		writeError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	path := filepath.Join(h.converter.WorkDir(), filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	file, err := os.Open(path)
	if err != nil {
		h.logger.Error("failed to open artifact",
			logging.String(logging.FieldFilename, filename),
			logging.Error(err),
		)
		writeError(w, http.StatusBadGateway, "Failed to read the requested file")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", media.ContentTypeFor(filename))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := io.Copy(w, file); err != nil {
		// Headers are gone; the client sees a truncated body. Keep the
		// artifact so the download can be retried before retention catches it.
		h.logger.Warn("artifact stream interrupted",
			logging.String(logging.FieldFilename, filename),
			logging.Error(err),
		)
		return
	}

	metrics.DownloadsServedTotal.Inc()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		h.logger.Warn("failed to delete served artifact",
			logging.String(logging.FieldFilename, filename),
			logging.Error(err),
		)
	}
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// FAQs returns the static question list rendered by the site frontend.
func (h *Handler) FAQs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, faqEntries)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact accepts a feedback submission. Messages are logged; there is no
// mailbox behind this endpoint.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "A message is required")
		return
	}
	h.logger.Info("contact message received",
		logging.String("name", req.Name),
		logging.String("email", req.Email),
		logging.Int("message_len", len(req.Message)),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message received",
	})
}

type statsResponse struct {
	Conversions *history.Summary `json:"conversions,omitempty"`
	Sweeper     *sweeperStats    `json:"sweeper,omitempty"`
}

type sweeperStats struct {
	Sweeps  int64 `json:"sweeps"`
	Deleted int64 `json:"deleted"`
}

// Stats reports lifetime conversion and retention counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var resp statsResponse
	if h.historyDB != nil {
		summary, err := h.historyDB.Summarize(r.Context())
		if err != nil {
			h.logger.Warn("failed to summarize history", logging.Error(err))
		} else {
			resp.Conversions = &summary
		}
	}
	if h.sweeper != nil {
		sweeps, deleted := h.sweeper.Stats()
		resp.Sweeper = &sweeperStats{Sweeps: sweeps, Deleted: deleted}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) downloadLink(r *http.Request, filename string) string {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/downloads/" + filename
}

func (h *Handler) userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return "Please enter a valid YouTube URL"
	case errors.Is(err, services.ErrArtifactMissing):
		return "Could not process your download. Please try again."
	default:
		return ytdlp.UserMessage(err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
