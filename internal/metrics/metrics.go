package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConversionsTotal counts finished conversions by target format and outcome.
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubeconv_conversions_total",
		Help: "Completed conversion requests by format and outcome.",
	}, []string{"format", "outcome"})

	// ConversionSeconds tracks end-to-end conversion latency.
	ConversionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tubeconv_conversion_duration_seconds",
		Help:    "Wall-clock duration of successful conversions.",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
	})

	// InflightConversions gauges yt-dlp processes currently running.
	InflightConversions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tubeconv_inflight_conversions",
		Help: "Conversions currently holding a worker slot.",
	})

	// SweptFilesTotal counts artifacts removed by the retention sweeper.
	SweptFilesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubeconv_swept_files_total",
		Help: "Artifacts deleted because they exceeded the retention age.",
	})

	// DownloadsServedTotal counts artifacts streamed to clients.
	DownloadsServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tubeconv_downloads_served_total",
		Help: "Artifact downloads streamed to completion.",
	})
)

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
