// Package logging assembles structured slog loggers and formatting helpers
// used across tubeconv components.
//
// It centralizes level and output plumbing and exposes context-aware helpers
// so request code automatically tags log lines with the correlation
// identifier shared with the artifact filename prefix. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
