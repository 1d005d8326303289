package preflight

import (
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Requirement defines an external dependency tubeconv relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries the pipeline depends on.
// yt-dlp shells out to ffmpeg for mp3 transcoding and mp4 muxing, so ffmpeg
// is listed even though tubeconv never invokes it directly.
func Requirements(ytdlpBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     ytdlpBinary,
			Description: "media extraction and transcoding",
		},
		{
			Name:        "ffmpeg",
			Command:     "ffmpeg",
			Description: "audio extraction and stream muxing (used by yt-dlp)",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckFreeSpace returns an error when dir's filesystem has less than
// minFreeMB megabytes available. A minFreeMB of 0 disables the check.
func CheckFreeSpace(dir string, minFreeMB int64) error {
	if minFreeMB <= 0 {
		return nil
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return fmt.Errorf("statfs %s: %w", dir, err)
	}
	freeMB := int64(stat.Bavail) * stat.Bsize / (1024 * 1024)
	if freeMB < minFreeMB {
		return fmt.Errorf("insufficient disk space in %s: %d MB free, %d MB required", dir, freeMB, minFreeMB)
	}
	return nil
}
