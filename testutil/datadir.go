// Package testutil provides shared helpers for filesystem-backed tests.
// Every helper works inside t.TempDir(), so tests never touch the real
// data file or upload directory.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// DataDir is an isolated set of data paths for one test.
type DataDir struct {
	// Root is the temporary directory holding everything else.
	Root string
	// DataFile is the record-collection JSON file. It does not exist yet.
	DataFile string
	// UploadDir is the archive root. It does not exist yet.
	UploadDir string
	// BackupDir is where backup archives are written. It exists.
	BackupDir string
}

// NewDataDir creates a fresh DataDir. It is removed when the test finishes.
func NewDataDir(t *testing.T) DataDir {
	t.Helper()

	root := t.TempDir()
	dd := DataDir{
		Root:      root,
		DataFile:  filepath.Join(root, "data", "motoristas.json"),
		UploadDir: filepath.Join(root, "uploads"),
		BackupDir: filepath.Join(root, "backups"),
	}
	if err := os.MkdirAll(dd.BackupDir, 0o755); err != nil {
		t.Fatalf("testutil.NewDataDir: %v", err)
	}
	return dd
}

// WriteDataFile writes raw contents to the record-collection file.
// Use it to seed legacy or corrupt data.
func (dd DataDir) WriteDataFile(t *testing.T, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(dd.DataFile), 0o755); err != nil {
		t.Fatalf("testutil.WriteDataFile: mkdir: %v", err)
	}
	if err := os.WriteFile(dd.DataFile, []byte(contents), 0o644); err != nil {
		t.Fatalf("testutil.WriteDataFile: %v", err)
	}
}

// DriverDir returns the archive directory of a driver.
func (dd DataDir) DriverDir(id uuid.UUID) string {
	return filepath.Join(dd.UploadDir, id.String())
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
