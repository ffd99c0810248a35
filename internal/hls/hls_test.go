package hls

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLibrary(t *testing.T) {
	lib, err := NewLibrary(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}

	t.Run("NotReadyWithoutManifest", func(t *testing.T) {
		if lib.Ready(1) {
			t.Errorf("Expected video 1 to be not ready")
		}
	})

	t.Run("ReadyWithManifest", func(t *testing.T) {
		dir := filepath.Dir(lib.ManifestPath(2))
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create HLS dir: %v", err)
		}
		if err := os.WriteFile(lib.ManifestPath(2), []byte("#EXTM3U\n"), 0644); err != nil {
			t.Fatalf("Failed to write manifest: %v", err)
		}

		if !lib.Ready(2) {
			t.Errorf("Expected video 2 to be ready")
		}
	})

	t.Run("SegmentPath", func(t *testing.T) {
		path, err := lib.SegmentPath(2, "index0.ts")
		if err != nil {
			t.Fatalf("Failed to resolve segment: %v", err)
		}
		if filepath.Base(path) != "index0.ts" {
			t.Errorf("Unexpected segment path %s", path)
		}
		if filepath.Base(filepath.Dir(path)) != "2" {
			t.Errorf("Segment not resolved under video directory: %s", path)
		}
	})

	t.Run("SegmentPathTraversal", func(t *testing.T) {
		for _, name := range []string{"../index.m3u8", "../../etc/passwd", "a/b.ts"} {
			if _, err := lib.SegmentPath(2, name); err == nil {
				t.Errorf("Expected traversal rejection for %q", name)
			}
		}
	})
}

func TestFallbackManifest(t *testing.T) {
	manifest := FallbackManifest("http://localhost:8080/videos/5/stream/720p")

	for _, directive := range []string{
		"#EXTM3U",
		"#EXT-X-VERSION:3",
		"#EXT-X-TARGETDURATION:3600",
		"#EXT-X-MEDIA-SEQUENCE:0",
		"#EXT-X-PLAYLIST-TYPE:VOD",
		"#EXTINF:3600.0,",
		"http://localhost:8080/videos/5/stream/720p",
		"#EXT-X-ENDLIST",
	} {
		if !strings.Contains(manifest, directive) {
			t.Errorf("Manifest missing %q:\n%s", directive, manifest)
		}
	}

	if !strings.HasPrefix(manifest, "#EXTM3U\n") {
		t.Errorf("Manifest must start with #EXTM3U")
	}

	lines := strings.Split(strings.TrimSpace(manifest), "\n")
	if last := lines[len(lines)-1]; last != "#EXT-X-ENDLIST" {
		t.Errorf("Manifest must end with #EXT-X-ENDLIST, got %q", last)
	}
}
