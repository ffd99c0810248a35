package stream

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func testContent(size int) []byte {
	content := make([]byte, size)
	for i := range content {
		content[i] = byte(i % 251)
	}
	return content
}

func serveRange(t *testing.T, content []byte, rangeHeader string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/stream", nil)
	if rangeHeader != "" {
		r.Header.Set("Range", rangeHeader)
	}
	w := httptest.NewRecorder()

	if err := Serve(w, r, bytes.NewReader(content), int64(len(content)), "video/mp4"); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}
	return w
}

func TestServe_FullContent(t *testing.T) {
	content := testContent(4096)
	w := serveRange(t, content, "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Length"); got != strconv.Itoa(len(content)) {
		t.Errorf("Expected Content-Length %d, got %s", len(content), got)
	}
	if got := w.Header().Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Expected Accept-Ranges: bytes, got %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "video/mp4" {
		t.Errorf("Expected Content-Type video/mp4, got %q", got)
	}
	if !bytes.Equal(w.Body.Bytes(), content) {
		t.Errorf("Full body does not match file content")
	}
}

func TestServe_PartialContent(t *testing.T) {
	content := testContent(4096)

	tests := []struct {
		name       string
		header     string
		start, end int
	}{
		{"prefix", "bytes=0-99", 0, 99},
		{"interior", "bytes=1000-1999", 1000, 1999},
		{"open ended tail", "bytes=4000-", 4000, 4095},
		{"single byte", "bytes=4095-4095", 4095, 4095},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveRange(t, content, tt.header)

			if w.Code != http.StatusPartialContent {
				t.Fatalf("Expected status 206, got %d", w.Code)
			}

			wantLength := tt.end - tt.start + 1
			if got := w.Header().Get("Content-Length"); got != strconv.Itoa(wantLength) {
				t.Errorf("Expected Content-Length %d, got %s", wantLength, got)
			}

			wantRange := fmt.Sprintf("bytes %d-%d/%d", tt.start, tt.end, len(content))
			if got := w.Header().Get("Content-Range"); got != wantRange {
				t.Errorf("Expected Content-Range %q, got %q", wantRange, got)
			}

			if !bytes.Equal(w.Body.Bytes(), content[tt.start:tt.end+1]) {
				t.Errorf("Body is not the exact requested slice")
			}
		})
	}
}

func TestServe_RangeNotSatisfiable(t *testing.T) {
	content := testContent(1000)

	for _, header := range []string{"bytes=1000-", "bytes=0-1000", "bytes=2000-3000"} {
		t.Run(header, func(t *testing.T) {
			w := serveRange(t, content, header)

			if w.Code != http.StatusRequestedRangeNotSatisfiable {
				t.Fatalf("Expected status 416, got %d", w.Code)
			}
			if got := w.Header().Get("Content-Range"); got != "bytes */1000" {
				t.Errorf("Expected Content-Range \"bytes */1000\", got %q", got)
			}
			if w.Body.Len() != 0 {
				t.Errorf("Expected empty body, got %d bytes", w.Body.Len())
			}
		})
	}
}

func TestServe_MalformedRangeDegradesToFull(t *testing.T) {
	content := testContent(500)
	w := serveRange(t, content, "bytes=abc-def")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected malformed range to degrade to 200, got %d", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), content) {
		t.Errorf("Expected whole file for malformed range")
	}
}

// Two adjacent ranges must reassemble the file byte-for-byte.
func TestServe_RangePartition(t *testing.T) {
	content := testContent(2500)

	first := serveRange(t, content, "bytes=0-99")
	second := serveRange(t, content, fmt.Sprintf("bytes=100-%d", len(content)-1))

	joined := append(first.Body.Bytes(), second.Body.Bytes()...)
	if !bytes.Equal(joined, content) {
		t.Errorf("Concatenated range bodies do not reproduce the file")
	}
}
