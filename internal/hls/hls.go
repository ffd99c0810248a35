// Package hls locates pre-generated HLS output and synthesizes a fallback
// playlist for videos the converter has not segmented yet.
package hls

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const manifestName = "index.m3u8"

// Library is the on-disk HLS tree: one directory per video id holding an
// index.m3u8 plus its .ts segments. The converter writes here; this package
// only reads.
type Library struct {
	basePath string
}

func NewLibrary(basePath string) (*Library, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create HLS directory: %w", err)
	}
	return &Library{basePath: basePath}, nil
}

func (l *Library) videoDir(videoID int64) string {
	return filepath.Join(l.basePath, strconv.FormatInt(videoID, 10))
}

func (l *Library) ManifestPath(videoID int64) string {
	return filepath.Join(l.videoDir(videoID), manifestName)
}

// Ready reports whether the converter has produced a manifest for the video.
func (l *Library) Ready(videoID int64) bool {
	_, err := os.Stat(l.ManifestPath(videoID))
	return err == nil
}

// SegmentPath resolves a named segment inside the video's HLS directory.
// Names that escape the directory are rejected.
func (l *Library) SegmentPath(videoID int64, name string) (string, error) {
	clean := filepath.Clean(name)
	if clean != filepath.Base(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid segment name")
	}
	return filepath.Join(l.videoDir(videoID), clean), nil
}

// FallbackManifest builds a single-entry playlist pointing at an unsegmented
// source so HLS players can still play it. The 3600 target duration is a
// fixed placeholder the original converter shipped with; players in the
// field are tuned to it, so it is preserved rather than computed.
func FallbackManifest(streamURL string) string {
	return fmt.Sprintf(`#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:3600
#EXT-X-MEDIA-SEQUENCE:0
#EXT-X-PLAYLIST-TYPE:VOD
#EXTINF:3600.0,
%s
#EXT-X-ENDLIST
`, streamURL)
}
