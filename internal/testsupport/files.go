package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteArtifact drops a fake conversion artifact into dir and returns its path.
func WriteArtifact(t testing.TB, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write artifact %s: %v", name, err)
	}
	return path
}

// AgeFile rewinds a file's modification time by the given duration.
func AgeFile(t testing.TB, path string, age time.Duration) {
	t.Helper()
	past := time.Now().Add(-age)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatalf("age file %s: %v", path, err)
	}
}
