package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/videoflix/videoflix/internal/catalog"
	"github.com/videoflix/videoflix/internal/hls"
	"github.com/videoflix/videoflix/internal/models"
	"github.com/videoflix/videoflix/internal/storage"
	"github.com/videoflix/videoflix/internal/stream"
)

// videoContentType is what every variant is served as. The catalog stores
// mp4 output from the converter; webm/avi sources are transcoded before they
// reach the streaming path.
const videoContentType = "video/mp4"

const presignExpiry = 15 * time.Minute

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type App struct {
	VideoRepo *catalog.VideoRepository
	Media     storage.MediaStore
	HLS       *hls.Library
	Remote    *storage.S3Store // nil when no bucket-hosted variants exist
	BaseURL   string           // overrides request-derived URLs when set
}

func videoIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "videoID"), 10, 64)
}

// StreamVideoHandler serves a quality variant of a video, honoring HTTP
// Range requests for seeking. A missing quality falls back to the video's
// best available variant; the quality actually served is reported in the
// X-Video-Quality header.
func (app *App) StreamVideoHandler(w http.ResponseWriter, r *http.Request) {
	videoID, err := videoIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	quality := chi.URLParam(r, "quality")

	variant, err := app.VideoRepo.ResolveVariant(videoID, quality)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "Video not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to resolve variant for video %d: %v", videoID, err)
		http.Error(w, "Error loading video", http.StatusInternalServerError)
		return
	}

	loc := variant.ResolveLocation()
	w.Header().Set("X-Video-Quality", loc.Quality)

	// Remote variants redirect before any range handling; the target is
	// responsible for its own range support.
	switch loc.Kind {
	case models.LocationRemote:
		http.Redirect(w, r, loc.URL, http.StatusFound)
		return
	case models.LocationBucket:
		if app.Remote == nil {
			log.Printf("Video %d variant %s is bucket-hosted but no S3 store is configured", videoID, loc.Quality)
			http.Error(w, "Error loading video", http.StatusInternalServerError)
			return
		}
		url, err := app.Remote.PresignURL(r.Context(), loc.Bucket, loc.Key, presignExpiry)
		if err != nil {
			log.Printf("Failed to presign s3://%s/%s: %v", loc.Bucket, loc.Key, err)
			http.Error(w, "Error loading video", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	// Size comes from disk, not the catalog row; the converter may have
	// replaced the file since ingest.
	size, err := app.Media.FileSize(loc.Path)
	if err != nil {
		http.Error(w, "Video file not found", http.StatusNotFound)
		return
	}

	f, err := app.Media.OpenFile(loc.Path)
	if err != nil {
		http.Error(w, "Video file not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	if err := stream.Serve(w, r, f, size, videoContentType); err != nil {
		// Usually a client disconnect during seeking. Headers are already
		// out, so log and move on.
		log.Printf("Streaming video %d (%s) aborted: %v", videoID, loc.Quality, err)
	}
}

// QualityOptionsHandler lists the processed variants available for a video.
func (app *App) QualityOptionsHandler(w http.ResponseWriter, r *http.Request) {
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

	options, err := app.VideoRepo.ListQualities(videoID)
	if err != nil {
		log.Printf("Failed to list qualities for video %d: %v", videoID, err)
		http.Error(w, "Error loading video", http.StatusInternalServerError)
		return
	}

	defaultQuality, err := app.VideoRepo.DefaultQuality(videoID)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		log.Printf("Failed to compute default quality for video %d: %v", videoID, err)
		http.Error(w, "Error loading video", http.StatusInternalServerError)
		return
	}

	response := struct {
		AvailableQualities []catalog.QualityOption `json:"available_qualities"`
		DefaultQuality     string                  `json:"default_quality,omitempty"`
	}{
		AvailableQualities: options,
		DefaultQuality:     defaultQuality,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode quality options: %v", err)
	}
}

// fileMissing distinguishes a vanished file from a genuine read failure.
func fileMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
