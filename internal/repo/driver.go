// Package repo contains the persistence layer of the driver registry.
// Driver records live in a single JSON file that is read and rewritten as a
// whole; uploaded files live in a per-driver directory tree (files.go).
// No business logic lives here, only file access and type mapping.
package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
	"github.com/esturismo/motoristas/internal/metrics"
)

// DriverRepo defines the persistence operations for driver records.
// The service layer depends on this interface, not the JSON implementation,
// which allows the service to be unit-tested with a mock.
//
// There is no locking: concurrent writers race and the last whole-file
// write wins.
type DriverRepo interface {
	// List returns every stored driver. A missing file yields an empty slice.
	// Read or parse failures are logged and also yield an empty slice.
	List(ctx context.Context) []domain.Driver

	// GetByID returns the driver with the given id.
	// Returns domain.ErrNotFound if no driver with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)

	// Save replaces the driver with the same ID, or appends it when absent,
	// then rewrites the whole collection. Failures are logged and returned.
	// It builds on List, so after an unreadable or corrupt file it overwrites
	// the collection with d alone; Delete has the same edge.
	Save(ctx context.Context, d domain.Driver) error

	// Delete removes a driver by ID and rewrites the whole collection.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Path is the location of the backing JSON file.
	Path() string
}

// jsonDriverRepo is the flat-file implementation of DriverRepo.
type jsonDriverRepo struct {
	path    string
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewDriverRepo constructs a DriverRepo backed by the JSON file at path.
// The file and its parent directory are created on first write.
func NewDriverRepo(path string, log *slog.Logger, m *metrics.Metrics) DriverRepo {
	return &jsonDriverRepo{path: path, log: log, metrics: m}
}

func (r *jsonDriverRepo) Path() string { return r.path }

func (r *jsonDriverRepo) List(ctx context.Context) []domain.Driver {
	drivers, err := r.load(ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to load drivers", "path", r.path, "error", err)
		r.metrics.IncrementStoreFailure("load")
		return []domain.Driver{}
	}
	return drivers
}

func (r *jsonDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	for _, d := range r.List(ctx) {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *jsonDriverRepo) Save(ctx context.Context, d domain.Driver) error {
	drivers := r.List(ctx)

	replaced := false
	for i := range drivers {
		if drivers[i].ID == d.ID {
			drivers[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		drivers = append(drivers, d)
	}

	if err := r.write(drivers); err != nil {
		r.log.ErrorContext(ctx, "failed to save driver", "id", d.ID, "error", err)
		r.metrics.IncrementStoreFailure("save")
		return fmt.Errorf("repo.DriverRepo.Save: %w", err)
	}
	return nil
}

func (r *jsonDriverRepo) Delete(ctx context.Context, id uuid.UUID) error {
	drivers := r.List(ctx)

	kept := drivers[:0]
	for _, d := range drivers {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(drivers) {
		return fmt.Errorf("repo.DriverRepo.Delete: %w", domain.ErrNotFound)
	}

	if err := r.write(kept); err != nil {
		r.log.ErrorContext(ctx, "failed to delete driver", "id", id, "error", err)
		r.metrics.IncrementStoreFailure("delete")
		return fmt.Errorf("repo.DriverRepo.Delete: %w", err)
	}
	return nil
}

// load reads and migrates every record in the file.
// Records whose id is not a UUID are skipped with a warning.
func (r *jsonDriverRepo) load(ctx context.Context) ([]domain.Driver, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Driver{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []driverRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}

	drivers := make([]domain.Driver, 0, len(records))
	for _, rec := range records {
		d, err := rec.toDomain()
		if err != nil {
			r.log.WarnContext(ctx, "skipping malformed driver record", "id", rec.ID, "error", err)
			continue
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

// write overwrites the whole file. There is no write-then-rename, so a crash
// mid-write truncates the collection.
func (r *jsonDriverRepo) write(drivers []domain.Driver) error {
	records := make([]driverRecord, len(drivers))
	for i, d := range drivers {
		records[i] = fromDomain(d)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(r.path, buf.Bytes(), 0o644)
}
