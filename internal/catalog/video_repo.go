package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/videoflix/videoflix/internal/models"
)

// ErrNotFound is returned when a video, variant, or quality lookup has no row.
var ErrNotFound = errors.New("not found")

type VideoRepository struct {
	db *DB
}

func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) InsertVideo(title, description string) (int64, error) {
	if r.db.dbType == "postgres" {
		var id int64
		err := r.db.conn.QueryRow(
			"INSERT INTO videos (title, description, created_at) VALUES ($1, $2, $3) RETURNING id",
			title, description, time.Now(),
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert video: %w", err)
		}
		return id, nil
	}

	result, err := r.db.conn.Exec(
		"INSERT INTO videos (title, description, created_at) VALUES (?, ?, ?)",
		title, description, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert video: %w", err)
	}
	return result.LastInsertId()
}

func (r *VideoRepository) InsertVariant(vf *models.VideoFile) error {
	query := "INSERT INTO video_files (video_id, quality, location, file_size, is_processed, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	if r.db.dbType == "postgres" {
		query = "INSERT INTO video_files (video_id, quality, location, file_size, is_processed, created_at) VALUES ($1, $2, $3, $4, $5, $6)"
	}

	_, err := r.db.conn.Exec(query, vf.VideoID, vf.Quality, vf.Location, vf.FileSize, vf.Processed, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert variant: %w", err)
	}
	return nil
}

func (r *VideoRepository) FindVideo(id int64) (*models.Video, error) {
	query := "SELECT id, title, description, created_at FROM videos WHERE id = ?"
	if r.db.dbType == "postgres" {
		query = "SELECT id, title, description, created_at FROM videos WHERE id = $1"
	}

	var video models.Video
	err := r.db.conn.QueryRow(query, id).Scan(&video.ID, &video.Title, &video.Description, &video.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &video, nil
}

// FindVariant looks up the processed variant for an exact (video, quality)
// pair. Unprocessed rows are invisible to the streaming path.
func (r *VideoRepository) FindVariant(videoID int64, quality string) (*models.VideoFile, error) {
	query := "SELECT id, video_id, quality, location, file_size, is_processed, created_at FROM video_files WHERE video_id = ? AND quality = ? AND is_processed = 1"
	if r.db.dbType == "postgres" {
		query = "SELECT id, video_id, quality, location, file_size, is_processed, created_at FROM video_files WHERE video_id = $1 AND quality = $2 AND is_processed = TRUE"
	}

	var vf models.VideoFile
	err := r.db.conn.QueryRow(query, videoID, quality).Scan(
		&vf.ID, &vf.VideoID, &vf.Quality, &vf.Location, &vf.FileSize, &vf.Processed, &vf.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	return &vf, nil
}

// DefaultQuality returns the highest-ranked quality among the video's
// processed variants. ErrNotFound when the video has no processed variant.
func (r *VideoRepository) DefaultQuality(videoID int64) (string, error) {
	qualities, err := r.processedQualities(videoID)
	if err != nil {
		return "", err
	}

	if q := models.DefaultQuality(qualities); q != "" {
		return q, nil
	}
	return "", ErrNotFound
}

// ResolveVariant finds the variant for the requested quality, falling back to
// the video's default quality when the exact match is absent.
func (r *VideoRepository) ResolveVariant(videoID int64, quality string) (*models.VideoFile, error) {
	if _, err := r.FindVideo(videoID); err != nil {
		return nil, err
	}

	vf, err := r.FindVariant(videoID, quality)
	if err == nil {
		return vf, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	fallback, err := r.DefaultQuality(videoID)
	if err != nil {
		return nil, err
	}
	return r.FindVariant(videoID, fallback)
}

type QualityOption struct {
	Quality  string `json:"quality"`
	FileSize int64  `json:"file_size"`
}

// ListQualities returns the processed variants available for a video.
func (r *VideoRepository) ListQualities(videoID int64) ([]QualityOption, error) {
	query := "SELECT quality, file_size FROM video_files WHERE video_id = ? AND is_processed = 1 ORDER BY quality"
	if r.db.dbType == "postgres" {
		query = "SELECT quality, file_size FROM video_files WHERE video_id = $1 AND is_processed = TRUE ORDER BY quality"
	}

	rows, err := r.db.conn.Query(query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualities: %w", err)
	}
	defer rows.Close()

	var options []QualityOption
	for rows.Next() {
		var opt QualityOption
		if err := rows.Scan(&opt.Quality, &opt.FileSize); err != nil {
			return nil, fmt.Errorf("failed to scan quality: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (r *VideoRepository) processedQualities(videoID int64) ([]string, error) {
	query := "SELECT quality FROM video_files WHERE video_id = ? AND is_processed = 1"
	if r.db.dbType == "postgres" {
		query = "SELECT quality FROM video_files WHERE video_id = $1 AND is_processed = TRUE"
	}

	rows, err := r.db.conn.Query(query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualities: %w", err)
	}
	defer rows.Close()

	var qualities []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan quality: %w", err)
		}
		qualities = append(qualities, q)
	}
	return qualities, rows.Err()
}
