package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tubeconv/internal/logging"
	"tubeconv/internal/media"
	"tubeconv/internal/media/ytdlp"
	"tubeconv/internal/pipeline"
	"tubeconv/internal/server"
	"tubeconv/internal/services"
	"tubeconv/internal/testsupport"
)

type stubConverter struct {
	workDir   string
	result    pipeline.Result
	err       error
	gotURL    string
	gotFormat media.Format
}

func (s *stubConverter) Convert(_ context.Context, sourceURL string, format media.Format) (pipeline.Result, error) {
	s.gotURL = sourceURL
	s.gotFormat = format
	return s.result, s.err
}

func (s *stubConverter) WorkDir() string { return s.workDir }

func newTestServer(t *testing.T, converter *stubConverter) *httptest.Server {
	t.Helper()
	handler := server.NewHandler(converter, "", nil, nil, logging.NewNop())
	srv := server.New("127.0.0.1:0", handler, logging.NewNop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postDownload(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/download", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func TestDownloadSuccess(t *testing.T) {
	converter := &stubConverter{
		workDir: t.TempDir(),
		result: pipeline.Result{
			JobID:     "0a1b2c3d",
			Filename:  "0a1b2c3d.mp3",
			SizeBytes: 4_194_304,
			Elapsed:   1500 * time.Millisecond,
		},
	}
	ts := newTestServer(t, converter)

	resp, payload := postDownload(t, ts, `{"url":"https://www.youtube.com/watch?v=abc123","format":"mp3"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Fatalf("success = %v", payload["success"])
	}
	if payload["format"] != "mp3" {
		t.Fatalf("format = %v", payload["format"])
	}
	if payload["fileSize"] != "4.00 MB" {
		t.Fatalf("fileSize = %v", payload["fileSize"])
	}
	if payload["processingTime"] != "1.50 seconds" {
		t.Fatalf("processingTime = %v", payload["processingTime"])
	}
	link, _ := payload["downloadLink"].(string)
	if want := ts.URL + "/downloads/0a1b2c3d.mp3"; link != want {
		t.Fatalf("downloadLink = %q, want %q", link, want)
	}
	if converter.gotURL != "https://www.youtube.com/watch?v=abc123" || converter.gotFormat != media.FormatMP3 {
		t.Fatalf("converter got (%q, %q)", converter.gotURL, converter.gotFormat)
	}
}

func TestDownloadValidation(t *testing.T) {
	ts := newTestServer(t, &stubConverter{workDir: t.TempDir()})

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing url", `{"format":"mp3"}`, "A valid YouTube URL is required"},
		{"malformed body", `{`, "A valid YouTube URL is required"},
		{"bad format", `{"url":"https://youtube.com/watch?v=x","format":"wav"}`, "Format must be mp3 or mp4"},
		{"not a watch url", `{"url":"https://example.com/watch?v=x","format":"mp3"}`, "Please enter a valid YouTube URL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, payload := postDownload(t, ts, tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if payload["error"] != tc.want {
				t.Fatalf("error = %v, want %q", payload["error"], tc.want)
			}
		})
	}
}

func TestDownloadSurfacesUserMessage(t *testing.T) {
	converter := &stubConverter{
		workDir: t.TempDir(),
		err: services.Wrap(services.ErrExternalTool, "pipeline", "fetch", "",
			ytdlp.ErrVideoUnavailable),
	}
	ts := newTestServer(t, converter)

	resp, payload := postDownload(t, ts, `{"url":"https://youtu.be/abc123","format":"mp4"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if payload["error"] != "This video is unavailable or private. Please try another video." {
		t.Fatalf("error = %v", payload["error"])
	}
}

func TestDownloadTimeoutStatus(t *testing.T) {
	converter := &stubConverter{
		workDir: t.TempDir(),
		err: services.Wrap(services.ErrTimeout, "pipeline", "fetch", "",
			ytdlp.ErrFetchTimeout),
	}
	ts := newTestServer(t, converter)

	resp, payload := postDownload(t, ts, `{"url":"https://youtu.be/abc123","format":"mp3"}`)
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", resp.StatusCode)
	}
	if payload["error"] != "The conversion took too long and was aborted. Please try again later." {
		t.Fatalf("error = %v", payload["error"])
	}
}

func TestServeArtifactOnce(t *testing.T) {
	converter := &stubConverter{workDir: t.TempDir()}
	path := testsupport.WriteArtifact(t, converter.workDir, "job.mp3", []byte("audio-bytes"))
	ts := newTestServer(t, converter)

	resp, err := http.Get(ts.URL + "/downloads/job.mp3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "audio/mpeg" {
		t.Fatalf("content type = %q", got)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="job.mp3"` {
		t.Fatalf("content disposition = %q", got)
	}
	if string(body) != "audio-bytes" {
		t.Fatalf("body = %q", body)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("artifact not deleted after delivery: %v", err)
	}

	again, err := http.Get(ts.URL + "/downloads/job.mp3")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	again.Body.Close()
	if again.StatusCode != http.StatusNotFound {
		t.Fatalf("second status = %d, want 404", again.StatusCode)
	}
}

func TestServeArtifactRejectsTraversal(t *testing.T) {
	converter := &stubConverter{workDir: t.TempDir()}
	ts := newTestServer(t, converter)

	resp, err := http.Get(ts.URL + "/downloads/..%2Fsecret.mp3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != "Invalid filename" {
		t.Fatalf("error = %q", payload["error"])
	}
}

func TestServeArtifactMissing(t *testing.T) {
	converter := &stubConverter{workDir: t.TempDir()}
	ts := newTestServer(t, converter)

	resp, err := http.Get(ts.URL + "/downloads/ghost.mp4")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != "File not found" {
		t.Fatalf("error = %q", payload["error"])
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &stubConverter{workDir: t.TempDir()})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Fatalf("status field = %q", payload["status"])
	}
	if _, err := time.Parse(time.RFC3339, payload["timestamp"]); err != nil {
		t.Fatalf("timestamp not RFC3339: %v", err)
	}
}

func TestFAQs(t *testing.T) {
	ts := newTestServer(t, &stubConverter{workDir: t.TempDir()})

	resp, err := http.Get(ts.URL + "/api/faqs")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var faqs []server.FAQ
	if err := json.NewDecoder(resp.Body).Decode(&faqs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(faqs) == 0 {
		t.Fatal("no faqs returned")
	}
	for i, faq := range faqs {
		if faq.Question == "" || faq.Answer == "" {
			t.Fatalf("faq %d incomplete: %+v", i, faq)
		}
	}
}

func TestContact(t *testing.T) {
	ts := newTestServer(t, &stubConverter{workDir: t.TempDir()})

	resp, err := http.Post(ts.URL+"/api/contact", "application/json",
		bytes.NewBufferString(`{"name":"a","email":"a@b.c","message":"hi"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["success"] != true || payload["message"] != "Message received" {
		t.Fatalf("payload = %v", payload)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubConverter{workDir: t.TempDir()})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
