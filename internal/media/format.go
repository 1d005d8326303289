package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the conversion target requested by a client.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatMP4 Format = "mp4"
)

// ParseFormat validates a client-supplied format string.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mp3":
		return FormatMP3, nil
	case "mp4":
		return FormatMP4, nil
	default:
		return "", fmt.Errorf("format must be mp3 or mp4")
	}
}

func (f Format) String() string { return string(f) }

// ContentTypeFor derives a response content type from an artifact filename.
// Audio containers map to audio/mpeg; everything else is served as video.
func ContentTypeFor(filename string) string {
	if strings.ToLower(filepath.Ext(filename)) == ".mp3" {
		return "audio/mpeg"
	}
	return "video/mp4"
}
