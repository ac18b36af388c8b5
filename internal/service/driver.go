// Package service contains the business logic of the driver registry.
// Services validate inputs, enforce the identity and lifecycle rules, and
// orchestrate the record store and the file archive.
// No file access lives here; services depend on repo interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
	"github.com/esturismo/motoristas/internal/identity"
	"github.com/esturismo/motoristas/internal/metrics"
	"github.com/esturismo/motoristas/internal/repo"
)

// uploadRoles is the order in which uploaded files are stored.
var uploadRoles = append([]domain.FileRole{domain.RolePhoto}, domain.DocumentRoles...)

// DriverService implements the driver lifecycle:
// nonexistent -> active <-> inactive -> deleted.
type DriverService struct {
	drivers        repo.DriverRepo
	files          repo.FileArchive
	log            *slog.Logger
	metrics        *metrics.Metrics
	warnWindowDays int
	now            func() time.Time
}

// NewDriverService constructs a DriverService backed by the provided repos.
// warnWindowDays is the lookahead in which expiry dates raise a warning.
func NewDriverService(drivers repo.DriverRepo, files repo.FileArchive, log *slog.Logger, m *metrics.Metrics, warnWindowDays int) *DriverService {
	return &DriverService{
		drivers:        drivers,
		files:          files,
		log:            log,
		metrics:        m,
		warnWindowDays: warnWindowDays,
		now:            time.Now,
	}
}

// WithClock overrides the clock used for timestamps and expiry checks.
// Intended for tests.
func (s *DriverService) WithClock(now func() time.Time) *DriverService {
	s.now = now
	return s
}

// Register validates the CPF, rejects duplicates, creates the driver's file
// tree, stores the provided files and persists an active record.
// Missing or disallowed files are skipped. Nothing is rolled back when a
// later step fails.
//
// Returns domain.ErrInvalidTaxID or domain.ErrDuplicateTaxID for identity failures.
func (s *DriverService) Register(ctx context.Context, in domain.DriverInput, uploads map[domain.FileRole]domain.Upload) (domain.Driver, error) {
	taxID := identity.NormalizeTaxID(in.TaxID)
	if !identity.IsValidTaxID(taxID) {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Register: %w", domain.ErrInvalidTaxID)
	}
	for _, d := range s.drivers.List(ctx) {
		if d.TaxID == taxID {
			return domain.Driver{}, fmt.Errorf("service.DriverService.Register: %w", domain.ErrDuplicateTaxID)
		}
	}

	d := domain.Driver{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(in.Name),
		BirthDate:     in.BirthDate,
		TaxID:         taxID,
		Phone:         identity.FormatPhone(in.Phone),
		BondType:      in.BondType,
		LicenseExpiry: in.LicenseExpiry,
		CourseExpiry:  in.CourseExpiry,
		RegisteredAt:  s.now(),
		Status:        domain.StatusActive,
		Files:         map[domain.FileRole]string{},
	}
	if err := s.files.EnsureDriverTree(d.ID); err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Register: %w", err)
	}
	if _, err := s.storeUploads(ctx, &d, uploads); err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Register: %w", err)
	}
	if err := s.drivers.Save(ctx, d); err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Register: %w", err)
	}

	s.metrics.IncrementRegistered()
	s.log.InfoContext(ctx, "driver registered", "id", d.ID, "files", len(d.Files))
	return d, nil
}

// GetByID returns a single driver.
// Returns domain.ErrNotFound if the driver does not exist.
func (s *DriverService) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.GetByID: %w", err)
	}
	return d, nil
}

// Update overwrites the mutable fields present in u. The CPF and the ID
// never change.
func (s *DriverService) Update(ctx context.Context, id uuid.UUID, u domain.DriverUpdate) (domain.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Update: %w", err)
	}

	if u.Name != nil {
		d.Name = strings.TrimSpace(*u.Name)
	}
	if u.BirthDate != nil {
		d.BirthDate = *u.BirthDate
	}
	if u.Phone != nil {
		d.Phone = identity.FormatPhone(*u.Phone)
	}
	if u.BondType != nil {
		d.BondType = *u.BondType
	}
	if u.LicenseExpiry != nil {
		d.LicenseExpiry = *u.LicenseExpiry
	}
	if u.CourseExpiry != nil {
		d.CourseExpiry = *u.CourseExpiry
	}

	if err := s.drivers.Save(ctx, d); err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Update: %w", err)
	}
	return d, nil
}

// UpdateFiles stores replacement photo or document files for a driver.
// Missing or disallowed files are skipped like in Register.
// Returns domain.ErrNoFile if nothing was stored.
func (s *DriverService) UpdateFiles(ctx context.Context, id uuid.UUID, uploads map[domain.FileRole]domain.Upload) (domain.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.UpdateFiles: %w", err)
	}

	stored, err := s.storeUploads(ctx, &d, uploads)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.UpdateFiles: %w", err)
	}
	if stored == 0 {
		return domain.Driver{}, fmt.Errorf("service.DriverService.UpdateFiles: %w", domain.ErrNoFile)
	}
	if err := s.drivers.Save(ctx, d); err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.UpdateFiles: %w", err)
	}
	return d, nil
}

// SetStatus activates or deactivates a driver.
// Returns domain.ErrNotFound or domain.ErrInvalidStatus.
func (s *DriverService) SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.SetStatus: %w", err)
	}
	st, err := domain.ParseStatus(status)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.SetStatus: %w: %q", err, status)
	}

	d.Status = st
	if err := s.drivers.Save(ctx, d); err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.SetStatus: %w", err)
	}

	s.metrics.IncrementStatusChange(string(st))
	s.log.InfoContext(ctx, "driver status changed", "id", d.ID, "name", d.Name, "status", st)
	return d, nil
}

// Delete permanently removes a driver and its file tree. Failing to remove
// the files is logged and does not stop the record deletion.
// Returns domain.ErrNotFound if the driver does not exist.
func (s *DriverService) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.DriverService.Delete: %w", err)
	}

	if err := s.files.DeleteDriverTree(id); err != nil {
		s.log.ErrorContext(ctx, "failed to remove driver files", "id", id, "error", err)
		s.metrics.IncrementStoreFailure("delete_files")
	}
	if err := s.drivers.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DriverService.Delete: %w", err)
	}

	s.metrics.IncrementDeleted()
	s.log.InfoContext(ctx, "driver deleted", "id", id, "name", d.Name)
	return nil
}

// Search returns drivers whose name contains query, case-insensitively, or
// whose CPF contains it. A query made only of digits and CPF punctuation
// is compared against the CPF with the punctuation stripped.
// An empty query returns every driver.
func (s *DriverService) Search(ctx context.Context, query string) []domain.Driver {
	all := s.drivers.List(ctx)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	taxQuery := q
	if isTaxIDQuery(q) {
		taxQuery = identity.NormalizeTaxID(q)
	}

	out := []domain.Driver{}
	for _, d := range all {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			(taxQuery != "" && strings.Contains(d.TaxID, taxQuery)) {
			out = append(out, d)
		}
	}
	return out
}

// isTaxIDQuery reports whether q holds only digits and the separators
// used when writing a CPF, with at least one digit.
func isTaxIDQuery(q string) bool {
	digits := 0
	for _, r := range q {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.', r == '-', r == ' ':
		default:
			return false
		}
	}
	return digits > 0
}

// ResolveDownload returns the on-disk path of a stored file of a driver.
// Returns domain.ErrNotFound for an unknown driver or file and
// domain.ErrInvalidPath for a filename escaping the driver's directory.
func (s *DriverService) ResolveDownload(ctx context.Context, id uuid.UUID, category domain.FileCategory, filename string) (string, error) {
	if _, err := s.drivers.GetByID(ctx, id); err != nil {
		return "", fmt.Errorf("service.DriverService.ResolveDownload: %w", err)
	}
	path, err := s.files.ResolveDownload(id, category, filename)
	if err != nil {
		return "", fmt.Errorf("service.DriverService.ResolveDownload: %w", err)
	}
	return path, nil
}

// storeUploads stores each provided upload and records its file name on d.
// Uploads that are empty or have a disallowed extension are skipped.
// Returns how many files were stored.
func (s *DriverService) storeUploads(ctx context.Context, d *domain.Driver, uploads map[domain.FileRole]domain.Upload) (int, error) {
	if d.Files == nil {
		d.Files = map[domain.FileRole]string{}
	}
	stored := 0
	for _, role := range uploadRoles {
		up, ok := uploads[role]
		if !ok {
			continue
		}
		name, err := s.files.StoreFile(d.ID, role, up)
		if errors.Is(err, domain.ErrNoFile) || errors.Is(err, domain.ErrInvalidType) {
			s.log.WarnContext(ctx, "upload skipped", "id", d.ID, "role", role, "filename", up.Filename, "reason", domain.KindOf(err))
			continue
		}
		if err != nil {
			return stored, err
		}
		d.Files[role] = name
		stored++
		s.log.InfoContext(ctx, "file stored", "id", d.ID, "role", role, "name", name)
	}
	return stored, nil
}
