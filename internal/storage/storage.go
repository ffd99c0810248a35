package storage

import "io"

// MediaStore is the filesystem surface the streaming path depends on: open a
// stored variant for reading, size it, and check presence. SaveFile and
// DeleteFile serve the ingest side that registers transcoder output.
type MediaStore interface {
	OpenFile(name string) (io.ReadSeekCloser, error)
	FileSize(name string) (int64, error)
	FileExists(name string) bool
	SaveFile(src io.Reader, originalName string) (string, error)
	DeleteFile(name string) error
}
