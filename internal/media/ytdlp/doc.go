// Package ytdlp wraps invocation of the external yt-dlp binary.
//
// The client builds argument vectors (never shell strings), applies the fetch
// timeout, and classifies the tool's stderr into a small failure taxonomy the
// HTTP boundary can translate to user-safe messages. yt-dlp owns format
// selection and transcoding; this package treats it as an opaque,
// untrusted-output dependency whose only contract is "exit status plus
// whatever file materializes under the output template".
package ytdlp
