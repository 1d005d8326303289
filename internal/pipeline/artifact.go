package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifact is the media file a conversion job produced. The filename always
// begins with the job identifier; the extension is whatever yt-dlp chose.
type Artifact struct {
	Filename  string
	Path      string
	SizeBytes int64
}

// ErrNoArtifact indicates the tool reported success but no file with the
// job's prefix materialized. Fatal, not retryable.
var ErrNoArtifact = errors.New("no artifact for job")

// ResolveArtifact scans dir for the first entry whose name has jobID as a
// prefix. os.ReadDir returns entries sorted by name, so when a stray partial
// file shares the prefix the pick is lexical-first; that tie-break is the
// documented policy, not a correctness guarantee.
func ResolveArtifact(dir, jobID string) (Artifact, error) {
	if strings.TrimSpace(jobID) == "" {
		return Artifact{}, errors.New("job id required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Artifact{}, fmt.Errorf("list working directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasPrefix(entry.Name(), jobID) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return Artifact{}, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		return Artifact{
			Filename:  entry.Name(),
			Path:      filepath.Join(dir, entry.Name()),
			SizeBytes: info.Size(),
		}, nil
	}
	return Artifact{}, fmt.Errorf("%w: %s", ErrNoArtifact, jobID)
}
