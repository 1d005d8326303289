package ytdlp

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes surfaced from yt-dlp's diagnostic text. The tool's stderr
// is the only failure signal available, so classification is substring-based
// and deliberately coarse.
var (
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrCopyrightRestricted = errors.New("copyright restricted")
	ErrAgeRestricted       = errors.New("age restricted")
	ErrVideoNotFound       = errors.New("video not found")
	ErrFetchTimeout        = errors.New("fetch timeout")
)

func classifyFailure(diagnostics string, err error) error {
	combined := strings.ToLower(diagnostics + "\n" + err.Error())
	switch {
	case strings.Contains(combined, "unavailable"), strings.Contains(combined, "private"):
		return fmt.Errorf("%w: %w", ErrVideoUnavailable, err)
	case strings.Contains(combined, "copyright"):
		return fmt.Errorf("%w: %w", ErrCopyrightRestricted, err)
	case strings.Contains(combined, "age"):
		return fmt.Errorf("%w: %w", ErrAgeRestricted, err)
	case strings.Contains(combined, "not found"), strings.Contains(combined, "does not exist"):
		return fmt.Errorf("%w: %w", ErrVideoNotFound, err)
	default:
		return fmt.Errorf("yt-dlp fetch: %w", err)
	}
}

// UserMessage maps a fetch error to the user-safe text returned by the API.
// Raw tool output never reaches a client.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrVideoUnavailable):
		return "This video is unavailable or private. Please try another video."
	case errors.Is(err, ErrCopyrightRestricted):
		return "This video cannot be downloaded due to copyright restrictions."
	case errors.Is(err, ErrAgeRestricted):
		return "Age-restricted videos cannot be downloaded."
	case errors.Is(err, ErrVideoNotFound):
		return "Video not found. Please check the URL and try again."
	case errors.Is(err, ErrFetchTimeout):
		return "The conversion took too long and was aborted. Please try again later."
	default:
		return "Failed to process your download. Please try again later."
	}
}
