package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "ytdlp", "fetch", "process failed", base)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
}

func TestWrapDefaultsToInternal(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal fallback, got %v", err)
	}
	if err.Error() != "internal error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{Wrap(ErrInvalidInput, "server", "decode", "bad url", nil), http.StatusBadRequest},
		{Wrap(ErrNotFound, "server", "serve", "gone", nil), http.StatusNotFound},
		{Wrap(ErrTimeout, "ytdlp", "fetch", "deadline", nil), http.StatusGatewayTimeout},
		{Wrap(ErrExternalTool, "ytdlp", "fetch", "boom", nil), http.StatusInternalServerError},
		{Wrap(ErrArtifactMissing, "pipeline", "resolve", "no file", nil), http.StatusInternalServerError},
		{fmt.Errorf("untagged"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(t.Context(), "abcd1234")
	id, ok := RequestIDFromContext(ctx)
	if !ok || id != "abcd1234" {
		t.Fatalf("expected request id, got %q ok=%v", id, ok)
	}
	if _, ok := RequestIDFromContext(t.Context()); ok {
		t.Fatal("expected no request id on bare context")
	}
}
