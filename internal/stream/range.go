// Package stream implements HTTP Range request parsing and partial/full
// content responses for video delivery.
package stream

import (
	"strconv"
	"strings"
)

type RangeKind int

const (
	// RangeFull means no usable range was requested: serve the whole file.
	RangeFull RangeKind = iota
	// RangePartial is a validated inclusive byte span within the file.
	RangePartial
	// RangeUnsatisfiable means the request named offsets beyond the file.
	RangeUnsatisfiable
)

// RangeSpec is the normalized outcome of parsing a Range header against a
// known file size. Start and End are inclusive zero-based offsets, only
// meaningful when Kind is RangePartial.
type RangeSpec struct {
	Kind  RangeKind
	Start int64
	End   int64
}

// ParseRange interprets a Range header value against the total file size.
//
// Accepted forms are "bytes=<start>-<end>" and the open-ended
// "bytes=<start>-". Everything else, including suffix ranges and multi-range
// requests, degrades to RangeFull: clients send exploratory or slightly
// malformed probes and ignoring them beats erroring. Offsets at or past the
// file size are the one hard failure, reported as RangeUnsatisfiable so the
// caller can answer 416.
func ParseRange(header string, size int64) RangeSpec {
	header = strings.TrimSpace(header)
	if header == "" {
		return RangeSpec{Kind: RangeFull}
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return RangeSpec{Kind: RangeFull}
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return RangeSpec{Kind: RangeFull}
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return RangeSpec{Kind: RangeFull}
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < 0 {
			return RangeSpec{Kind: RangeFull}
		}
	}

	if start >= size || end >= size {
		return RangeSpec{Kind: RangeUnsatisfiable}
	}
	if start > end {
		return RangeSpec{Kind: RangeFull}
	}

	return RangeSpec{Kind: RangePartial, Start: start, End: end}
}
