package stream

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// copyBufferSize bounds per-request memory; served files can run to hundreds
// of MB and are never loaded whole.
const copyBufferSize = 64 * 1024

// Serve writes f to the client honoring the request's Range header. It emits
// 206 with the exact slice for a valid partial range, 416 with an empty body
// for an out-of-bounds one, and a full 200 stream otherwise. Accept-Ranges is
// always advertised so plain GET clients learn seeking is supported.
//
// A non-nil return means the body copy was cut short, typically by the client
// disconnecting mid-seek; headers have been sent by then, so the caller can
// only log it.
func Serve(w http.ResponseWriter, r *http.Request, f io.ReadSeeker, size int64, contentType string) error {
	spec := ParseRange(r.Header.Get("Range"), size)

	switch spec.Kind {
	case RangeUnsatisfiable:
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return nil

	case RangePartial:
		length := spec.End - spec.Start + 1
		if _, err := f.Seek(spec.Start, io.SeekStart); err != nil {
			http.Error(w, "Error reading video file", http.StatusInternalServerError)
			return fmt.Errorf("failed to seek to %d: %w", spec.Start, err)
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", spec.Start, spec.End, size))
		w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusPartialContent)

		return copyChunked(w, io.LimitReader(f, length))

	default:
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Accept-Ranges", "bytes")

		return copyChunked(w, f)
	}
}

func copyChunked(dst io.Writer, src io.Reader) error {
	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(dst, src, buf); err != nil {
		return fmt.Errorf("stream interrupted: %w", err)
	}
	return nil
}
