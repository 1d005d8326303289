// Package preflight verifies the runtime environment before conversions run:
// required binaries on PATH and free disk space in the working directory.
package preflight
