package fileutil

import (
	"fmt"
	"os"
	"strings"
)

// EnsureDir creates dir (and parents) when missing.
func EnsureDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("directory path required")
	}
	return os.MkdirAll(dir, 0o755)
}

// SafeFilename reports whether name is a bare filename that can be joined to
// a directory without escaping it. Path separators and parent references are
// rejected regardless of whether a matching file exists.
func SafeFilename(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return true
}

// FormatSizeMB renders a byte count as a human-readable megabyte string,
// e.g. "12.34 MB".
func FormatSizeMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}
