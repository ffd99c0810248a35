package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/videoflix/videoflix/internal/catalog"
	"github.com/videoflix/videoflix/internal/hls"
	"github.com/videoflix/videoflix/internal/models"
)

const (
	manifestContentType = "application/vnd.apple.mpegurl"
	segmentContentType  = "video/MP2T"
)

// setPlaybackCORS allows playback from a frontend served on a different
// origin. Intentionally permissive: manifests and segments carry no
// per-user data.
func setPlaybackCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// baseURL yields the absolute URL prefix fallback manifests point at,
// preferring the configured public URL over what the request advertises.
func (app *App) baseURL(r *http.Request) string {
	if app.BaseURL != "" {
		return app.BaseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// HLSManifestHandler serves the converter's playlist when it exists, and
// otherwise synthesizes a single-entry playlist pointing at the raw stream
// endpoint so an HLS player can still play the unsegmented source. Only a
// missing video is a 404; an unconverted one is the degrade path, not an
// error.
func (app *App) HLSManifestHandler(w http.ResponseWriter, r *http.Request) {
	videoID, err := videoIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := app.VideoRepo.FindVideo(videoID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "Video not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to load video %d: %v", videoID, err)
		http.Error(w, "Error loading video", http.StatusInternalServerError)
		return
	}

	setPlaybackCORS(w)
	w.Header().Set("Content-Type", manifestContentType)
	w.Header().Set("Cache-Control", "no-cache")

	if app.HLS.Ready(videoID) {
		content, err := os.ReadFile(app.HLS.ManifestPath(videoID))
		if err != nil {
			log.Printf("Failed to read HLS manifest for video %d: %v", videoID, err)
			http.Error(w, "Error reading HLS manifest", http.StatusNotFound)
			return
		}
		w.Write(content)
		return
	}

	quality, err := app.VideoRepo.DefaultQuality(videoID)
	if err != nil {
		// No processed variant yet. Point at the legacy label anyway; the
		// manifest stays playable the moment a file shows up.
		quality = models.QualityOriginal
	}

	streamURL := fmt.Sprintf("%s/videos/%d/stream/%s", app.baseURL(r), videoID, quality)
	io.WriteString(w, hls.FallbackManifest(streamURL))
}

// HLSSegmentHandler serves a named .ts segment from the video's HLS
// directory byte-for-byte.
func (app *App) HLSSegmentHandler(w http.ResponseWriter, r *http.Request) {
	videoID, err := videoIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	segment := chi.URLParam(r, "segment")

	if _, err := app.VideoRepo.FindVideo(videoID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "Video not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to load video %d: %v", videoID, err)
		http.Error(w, "Error loading video", http.StatusInternalServerError)
		return
	}

	segmentPath, err := app.HLS.SegmentPath(videoID, segment)
	if err != nil {
		http.Error(w, "Segment not found", http.StatusNotFound)
		return
	}

	f, err := os.Open(segmentPath)
	if err != nil {
		if fileMissing(err) {
			http.Error(w, "Segment not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to open segment %s for video %d: %v", segment, videoID, err)
		http.Error(w, "Error reading segment", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	setPlaybackCORS(w)
	w.Header().Set("Content-Type", segmentContentType)
	w.Header().Set("Cache-Control", "max-age=3600")

	if _, err := io.Copy(w, f); err != nil {
		log.Printf("Streaming segment %s for video %d aborted: %v", segment, videoID, err)
	}
}
