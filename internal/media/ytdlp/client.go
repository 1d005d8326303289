package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"tubeconv/internal/media"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStderr func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions. The URL is always passed as a single
// argv element; no shell ever interprets it.
type Client struct {
	binary       string
	fetchTimeout time.Duration
	exec         Executor
}

// New constructs a yt-dlp client.
func New(binary string, fetchTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:       binary,
		fetchTimeout: time.Duration(fetchTimeoutSeconds) * time.Second,
		exec:         commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Fetch downloads and transcodes the source URL into the output template's
// directory. The template keeps the extension as yt-dlp's %(ext)s wildcard;
// the tool decides the real container. Blocks until the process exits or the
// fetch timeout elapses. No retry on failure.
func (c *Client) Fetch(ctx context.Context, sourceURL string, format media.Format, outputTemplate string) error {
	if strings.TrimSpace(sourceURL) == "" {
		return errors.New("source url required")
	}
	if strings.TrimSpace(outputTemplate) == "" {
		return errors.New("output template required")
	}

	fetchCtx := ctx
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	var diagnostics []string
	err := c.exec.Run(fetchCtx, c.binary, buildArgs(sourceURL, format, outputTemplate), func(line string) {
		diagnostics = append(diagnostics, line)
	})
	if err != nil {
		if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: fetch exceeded %s", ErrFetchTimeout, c.fetchTimeout)
		}
		return classifyFailure(strings.Join(diagnostics, "\n"), err)
	}
	return nil
}

// buildArgs assembles the yt-dlp argument vector. Certificate checking stays
// disabled and free formats stay preferred, matching the service's historical
// invocation. The mp4 selector's fallback order is observable in the output
// container, so it must not be reordered.
func buildArgs(sourceURL string, format media.Format, outputTemplate string) []string {
	args := []string{
		"--no-check-certificate",
		"--no-warnings",
		"--prefer-free-formats",
		"-o", outputTemplate,
	}
	if format == media.FormatMP3 {
		args = append(args, "--extract-audio", "--audio-format", "mp3", "--audio-quality", "0")
	} else {
		args = append(args, "-f", "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best")
	}
	return append(args, sourceURL)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStderr func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", binary, err)
	}

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if onStderr != nil {
			onStderr(scanner.Text())
		}
	}

	return cmd.Wait()
}
