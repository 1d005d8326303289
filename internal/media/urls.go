package media

import "regexp"

// watchURLPattern accepts long-form and short-form YouTube links with an
// optional scheme and optional www prefix. Anything past the host is left to
// yt-dlp, which is the authority on whether the path resolves to a video.
var watchURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.?be)/.+`)

// IsWatchURL reports whether url looks like a plausible YouTube watch or
// short link. Pure predicate; no side effects.
func IsWatchURL(url string) bool {
	if url == "" {
		return false
	}
	return watchURLPattern.MatchString(url)
}
