package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorage(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewLocalStorage(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Run("SaveFile", func(t *testing.T) {
		content := []byte("test video content")

		filename, err := store.SaveFile(bytes.NewReader(content), "deposit.mp4")
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if filepath.Ext(filename) != ".mp4" {
			t.Errorf("Expected .mp4 extension, got %s", filepath.Ext(filename))
		}

		savedPath := filepath.Join(tmpDir, filename)
		if _, err := os.Stat(savedPath); os.IsNotExist(err) {
			t.Errorf("File was not saved to expected location: %s", savedPath)
		}
	})

	t.Run("OpenFile", func(t *testing.T) {
		content := []byte("test video content")
		testFile := "test-file.mp4"

		if err := os.WriteFile(filepath.Join(tmpDir, testFile), content, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		file, err := store.OpenFile(testFile)
		if err != nil {
			t.Fatalf("Failed to open file: %v", err)
		}
		defer file.Close()

		buf := make([]byte, len(content))
		n, err := file.Read(buf)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}

		if n != len(content) || !bytes.Equal(buf, content) {
			t.Errorf("File content mismatch")
		}
	})

	t.Run("FileSizeAndExists", func(t *testing.T) {
		content := []byte("0123456789")
		testFile := "sized.mp4"

		if err := os.WriteFile(filepath.Join(tmpDir, testFile), content, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		size, err := store.FileSize(testFile)
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}
		if size != int64(len(content)) {
			t.Errorf("Expected size %d, got %d", len(content), size)
		}

		if !store.FileExists(testFile) {
			t.Errorf("Expected file to exist")
		}
		if store.FileExists("missing.mp4") {
			t.Errorf("Expected missing file to not exist")
		}
	})

	t.Run("DeleteFile", func(t *testing.T) {
		testFile := "delete-test.mp4"
		fullPath := filepath.Join(tmpDir, testFile)

		if err := os.WriteFile(fullPath, []byte("test"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		if err := store.DeleteFile(testFile); err != nil {
			t.Fatalf("Failed to delete file: %v", err)
		}

		if _, err := os.Stat(fullPath); !os.IsNotExist(err) {
			t.Errorf("File was not deleted")
		}
	})

	t.Run("PathTraversalPrevention", func(t *testing.T) {
		if _, err := store.OpenFile("../../../etc/passwd"); err == nil {
			t.Errorf("Path traversal was not prevented")
		}
		if _, err := store.FileSize("/etc/passwd"); err == nil {
			t.Errorf("Absolute path was not rejected")
		}
		if err := store.DeleteFile("../../../etc/passwd"); err == nil {
			t.Errorf("Path traversal was not prevented in delete")
		}
	})
}
