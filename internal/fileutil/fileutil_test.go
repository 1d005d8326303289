package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDirCreatesNestedDirectories(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "a", "b", "c")
	if err := EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir returned error: %v", err)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat created dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected directory")
	}
}

func TestEnsureDirRejectsEmptyPath(t *testing.T) {
	if err := EnsureDir("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"abc123.mp3", true},
		{"550e8400-e29b-41d4-a716-446655440000.mp4", true},
		{"", false},
		{"   ", false},
		{"../etc/passwd", false},
		{"..", false},
		{"a/b.mp3", false},
		{`a\b.mp3`, false},
		{"foo..mp3", false},
	}
	for _, tc := range cases {
		if got := SafeFilename(tc.name); got != tc.want {
			t.Errorf("SafeFilename(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFormatSizeMB(t *testing.T) {
	if got := FormatSizeMB(5 * 1024 * 1024); got != "5.00 MB" {
		t.Fatalf("FormatSizeMB = %q", got)
	}
	if got := FormatSizeMB(1572864); got != "1.50 MB" {
		t.Fatalf("FormatSizeMB = %q", got)
	}
}
