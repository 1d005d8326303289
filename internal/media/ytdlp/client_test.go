package ytdlp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tubeconv/internal/media"
	"tubeconv/internal/media/ytdlp"
)

type stubExecutor struct {
	stderr []string
	err    error
	delay  time.Duration
	calls  int
	args   [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onStderr func(string)) error {
	s.calls++
	cloned := append([]string(nil), args...)
	s.args = append(s.args, cloned)
	for _, line := range s.stderr {
		onStderr(line)
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ytdlp.New("  ", 30); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestFetchBuildsAudioArgs(t *testing.T) {
	exec := &stubExecutor{}
	client, err := ytdlp.New("yt-dlp", 30, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if err := client.Fetch(context.Background(), url, media.FormatMP3, "/tmp/job.%(ext)s"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if exec.calls != 1 {
		t.Fatalf("expected one invocation, got %d", exec.calls)
	}
	want := []string{
		"--no-check-certificate", "--no-warnings", "--prefer-free-formats",
		"-o", "/tmp/job.%(ext)s",
		"--extract-audio", "--audio-format", "mp3", "--audio-quality", "0",
		url,
	}
	if !equalStrings(exec.args[0], want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", exec.args[0], want)
	}
}

func TestFetchBuildsVideoArgs(t *testing.T) {
	exec := &stubExecutor{}
	client, err := ytdlp.New("yt-dlp", 30, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	url := "https://youtu.be/dQw4w9WgXcQ"
	if err := client.Fetch(context.Background(), url, media.FormatMP4, "/tmp/job.%(ext)s"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	want := []string{
		"--no-check-certificate", "--no-warnings", "--prefer-free-formats",
		"-o", "/tmp/job.%(ext)s",
		"-f", "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
		url,
	}
	if !equalStrings(exec.args[0], want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", exec.args[0], want)
	}
}

func TestFetchRejectsEmptyInputs(t *testing.T) {
	client, err := ytdlp.New("yt-dlp", 30, ytdlp.WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Fetch(context.Background(), "", media.FormatMP3, "/tmp/x.%(ext)s"); err == nil {
		t.Fatal("expected error for empty url")
	}
	if err := client.Fetch(context.Background(), "https://youtu.be/x", media.FormatMP3, ""); err == nil {
		t.Fatal("expected error for empty template")
	}
}

func TestFetchClassifiesFailures(t *testing.T) {
	cases := []struct {
		name   string
		stderr []string
		want   error
	}{
		{"unavailable", []string{"ERROR: Video unavailable"}, ytdlp.ErrVideoUnavailable},
		{"private", []string{"ERROR: Private video. Sign in if you've been granted access"}, ytdlp.ErrVideoUnavailable},
		{"copyright", []string{"ERROR: blocked due to a copyright claim"}, ytdlp.ErrCopyrightRestricted},
		{"age", []string{"ERROR: Sign in to confirm your age"}, ytdlp.ErrAgeRestricted},
		{"notfound", []string{"ERROR: This video does not exist"}, ytdlp.ErrVideoNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exec := &stubExecutor{stderr: tc.stderr, err: errors.New("exit status 1")}
			client, err := ytdlp.New("yt-dlp", 30, ytdlp.WithExecutor(exec))
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			err = client.Fetch(context.Background(), "https://youtu.be/x", media.FormatMP3, "/tmp/x.%(ext)s")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFetchUnknownFailureIsNotClassified(t *testing.T) {
	exec := &stubExecutor{stderr: []string{"ERROR: some transient network thing"}, err: errors.New("exit status 1")}
	client, err := ytdlp.New("yt-dlp", 30, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.Fetch(context.Background(), "https://youtu.be/x", media.FormatMP4, "/tmp/x.%(ext)s")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, sentinel := range []error{
		ytdlp.ErrVideoUnavailable, ytdlp.ErrCopyrightRestricted,
		ytdlp.ErrAgeRestricted, ytdlp.ErrVideoNotFound, ytdlp.ErrFetchTimeout,
	} {
		if errors.Is(err, sentinel) {
			t.Fatalf("unexpected classification %v for %v", sentinel, err)
		}
	}
}

func TestFetchTimesOut(t *testing.T) {
	exec := &stubExecutor{delay: time.Second, err: errors.New("killed")}
	client, err := ytdlp.New("yt-dlp", 0, ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	fetchErr := client.Fetch(ctx, "https://youtu.be/x", media.FormatMP3, "/tmp/x.%(ext)s")
	if !errors.Is(fetchErr, ytdlp.ErrFetchTimeout) {
		t.Fatalf("expected ErrFetchTimeout, got %v", fetchErr)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
