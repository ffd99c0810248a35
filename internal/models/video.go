package models

import (
	"strings"
	"time"
)

const (
	Quality120p     = "120p"
	Quality360p     = "360p"
	Quality720p     = "720p"
	Quality1080p    = "1080p"
	QualityOriginal = "original"
)

// qualityPriority is the fixed ranking used to pick a fallback variant.
// Ranked explicitly because labels like "original" do not sort numerically.
var qualityPriority = []string{Quality1080p, Quality720p, Quality360p, Quality120p}

type Video struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
}

type VideoFile struct {
	ID        int64
	VideoID   int64
	Quality   string
	Location  string
	FileSize  int64
	Processed bool
	CreatedAt time.Time
}

// DefaultQuality returns the highest-ranked quality present in qualities,
// or "" when none of the ranked labels is present.
func DefaultQuality(qualities []string) string {
	for _, q := range qualityPriority {
		for _, have := range qualities {
			if have == q {
				return q
			}
		}
	}
	return ""
}

type LocationKind int

const (
	// LocationLocal is a path relative to the media root.
	LocationLocal LocationKind = iota
	// LocationRemote is an absolute http(s) URL served via redirect.
	LocationRemote
	// LocationBucket is an s3://bucket/key reference presigned into a URL.
	LocationBucket
)

// VariantLocation is the resolved location of a quality variant. The raw
// location string is discriminated once here instead of prefix-sniffed at
// every call site.
type VariantLocation struct {
	Kind    LocationKind
	Path    string // LocationLocal
	URL     string // LocationRemote
	Bucket  string // LocationBucket
	Key     string // LocationBucket
	Quality string
}

// ResolveLocation classifies the variant's stored location string.
func (vf *VideoFile) ResolveLocation() VariantLocation {
	loc := VariantLocation{Quality: vf.Quality}
	switch {
	case strings.HasPrefix(vf.Location, "http://"), strings.HasPrefix(vf.Location, "https://"):
		loc.Kind = LocationRemote
		loc.URL = vf.Location
	case strings.HasPrefix(vf.Location, "s3://"):
		loc.Kind = LocationBucket
		rest := strings.TrimPrefix(vf.Location, "s3://")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			loc.Bucket = rest[:i]
			loc.Key = rest[i+1:]
		} else {
			loc.Bucket = rest
		}
	default:
		loc.Kind = LocationLocal
		loc.Path = vf.Location
	}
	return loc
}
