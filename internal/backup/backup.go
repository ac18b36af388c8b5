// Package backup snapshots the record collection and the whole file archive
// into a single zip file.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"

	"github.com/esturismo/motoristas/internal/metrics"
)

const (
	namePrefix = "backup_es_turismo_"
	// RecordsEntry is the name of the record-collection file inside a backup.
	RecordsEntry = "motoristas.json"
	// UploadsEntry is the directory holding the archive tree inside a backup.
	UploadsEntry = "uploads"
)

// Sources locates the data to snapshot: the record-collection file
// (repo.DriverRepo.Path) and the archive root (repo.FileArchive.Root).
type Sources struct {
	RecordsFile string
	ArchiveRoot string
}

// Exporter builds backup archives in its output directory.
type Exporter struct {
	src       Sources
	outputDir string
	now       func() time.Time
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// NewExporter constructs an Exporter writing archives to outputDir.
func NewExporter(src Sources, outputDir string, log *slog.Logger, m *metrics.Metrics) *Exporter {
	return &Exporter{src: src, outputDir: outputDir, now: time.Now, log: log, metrics: m}
}

// WithClock overrides the clock used for archive names. Intended for tests.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// Create stages a copy of the records file and the archive tree in a
// temporary directory, zips it as backup_es_turismo_{timestamp}.zip and
// removes the staging directory. Missing sources are skipped.
//
// The caller owns the returned file and must call Discard once delivered.
// Every failure is returned; a partial archive is removed.
func (e *Exporter) Create(ctx context.Context) (string, error) {
	start := time.Now()
	ts := e.now().Format("20060102_150405")
	archivePath := filepath.Join(e.outputDir, namePrefix+ts+".zip")

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("backup.Exporter.Create: %w", err)
	}
	staging, err := os.MkdirTemp(e.outputDir, "temp_backup_"+ts+"_")
	if err != nil {
		return "", fmt.Errorf("backup.Exporter.Create: staging: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			e.log.ErrorContext(ctx, "failed to remove backup staging directory", "path", staging, "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return copyFile(e.src.RecordsFile, filepath.Join(staging, RecordsEntry))
	})
	g.Go(func() error {
		return copyTree(gctx, e.src.ArchiveRoot, filepath.Join(staging, UploadsEntry))
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("backup.Exporter.Create: staging: %w", err)
	}

	if err := zipDir(ctx, staging, archivePath); err != nil {
		os.Remove(archivePath)
		return "", fmt.Errorf("backup.Exporter.Create: compress: %w", err)
	}

	e.metrics.ObserveBackup(start)
	e.log.InfoContext(ctx, "backup created", "path", archivePath)
	return archivePath, nil
}

// Discard removes a delivered archive. Failures are logged, not returned.
func (e *Exporter) Discard(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.log.ErrorContext(ctx, "failed to remove backup archive", "path", path, "error", err)
		return
	}
	e.log.InfoContext(ctx, "backup archive removed", "path", path)
}

// copyFile copies src to dst. A missing src is not an error.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyTree recursively copies the directory src to dst. A missing src is
// not an error.
func copyTree(ctx context.Context, src, dst string) error {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

// zipDir writes every entry under dir into a new zip file at dst, with
// names relative to dir.
func zipDir(ctx context.Context, dir, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
			_, err := zw.CreateHeader(hdr)
			return err
		}
		hdr.Method = zip.Deflate
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})

	if err := zw.Close(); err != nil && walkErr == nil {
		walkErr = err
	}
	if err := out.Close(); err != nil && walkErr == nil {
		walkErr = err
	}
	return walkErr
}
