package repo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
)

const (
	documentsDir = "documentos"
	payslipsDir  = "holerites"
)

// allowedUploadExts are the extensions accepted for any stored file.
var allowedUploadExts = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true, "pdf": true}

// payslipListExts are the extensions reported by ListPayslips.
var payslipListExts = map[string]bool{"pdf": true, "png": true, "jpg": true, "jpeg": true}

// FileArchive stores the files of each driver under {root}/{driverID}/:
// the photo at the driver root, documents under documentos/ and payslips
// under holerites/{year}/{month}/.
type FileArchive interface {
	// Root is the top-level archive directory.
	Root() string

	// EnsureDriverTree creates the driver directory and its subdirectories.
	// It is idempotent.
	EnsureDriverTree(id uuid.UUID) error

	// StoreFile writes a photo or document for the given role and returns the
	// stored file name. Any previous file at the same path is overwritten.
	// Returns domain.ErrNoFile for an empty upload and domain.ErrInvalidType
	// for a disallowed extension.
	StoreFile(id uuid.UUID, role domain.FileRole, up domain.Upload) (string, error)

	// StorePayslip writes a payslip as holerites/{year}/{month}/holerite_{year}_{month}.{ext}.
	// Year and month must already be validated by the caller.
	StorePayslip(id uuid.UUID, year, month string, up domain.Upload) (string, error)

	// ListPayslips walks the payslip tree. The order is filesystem
	// enumeration order; callers sort when display order matters.
	ListPayslips(id uuid.UUID) ([]domain.Payslip, error)

	// ResolveDownload returns the absolute path of a stored file.
	// Returns domain.ErrInvalidPath when filename escapes its directory and
	// domain.ErrFileNotFound, which also matches domain.ErrNotFound, when no
	// such file exists.
	ResolveDownload(id uuid.UUID, category domain.FileCategory, filename string) (string, error)

	// DeleteDriverTree removes every file of the driver. It is idempotent.
	DeleteDriverTree(id uuid.UUID) error
}

type diskArchive struct {
	root string
}

// NewFileArchive constructs a FileArchive rooted at root.
func NewFileArchive(root string) FileArchive {
	return &diskArchive{root: root}
}

func (a *diskArchive) Root() string { return a.root }

func (a *diskArchive) driverDir(id uuid.UUID) string {
	return filepath.Join(a.root, id.String())
}

func (a *diskArchive) EnsureDriverTree(id uuid.UUID) error {
	base := a.driverDir(id)
	for _, dir := range []string{base, filepath.Join(base, documentsDir), filepath.Join(base, payslipsDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("repo.FileArchive.EnsureDriverTree: %w", err)
		}
	}
	return nil
}

func (a *diskArchive) StoreFile(id uuid.UUID, role domain.FileRole, up domain.Upload) (string, error) {
	ext, err := uploadExt(up)
	if err != nil {
		return "", fmt.Errorf("repo.FileArchive.StoreFile: %w", err)
	}
	if err := a.EnsureDriverTree(id); err != nil {
		return "", err
	}

	dir := a.driverDir(id)
	if role != domain.RolePhoto {
		dir = filepath.Join(dir, documentsDir)
	}
	name := fmt.Sprintf("%s_%s.%s", StoredRole(role), id, ext)
	if err := writeFile(filepath.Join(dir, name), up.Content); err != nil {
		return "", fmt.Errorf("repo.FileArchive.StoreFile: %w", err)
	}
	return name, nil
}

func (a *diskArchive) StorePayslip(id uuid.UUID, year, month string, up domain.Upload) (string, error) {
	ext, err := uploadExt(up)
	if err != nil {
		return "", fmt.Errorf("repo.FileArchive.StorePayslip: %w", err)
	}

	dir := filepath.Join(a.driverDir(id), payslipsDir, year, month)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("repo.FileArchive.StorePayslip: %w", err)
	}
	name := fmt.Sprintf("holerite_%s_%s.%s", year, month, ext)
	if err := writeFile(filepath.Join(dir, name), up.Content); err != nil {
		return "", fmt.Errorf("repo.FileArchive.StorePayslip: %w", err)
	}
	return name, nil
}

func (a *diskArchive) ListPayslips(id uuid.UUID) ([]domain.Payslip, error) {
	base := filepath.Join(a.driverDir(id), payslipsDir)
	years, err := os.ReadDir(base)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Payslip{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repo.FileArchive.ListPayslips: %w", err)
	}

	payslips := []domain.Payslip{}
	for _, year := range years {
		if !year.IsDir() {
			continue
		}
		months, err := os.ReadDir(filepath.Join(base, year.Name()))
		if err != nil {
			return nil, fmt.Errorf("repo.FileArchive.ListPayslips: %w", err)
		}
		for _, month := range months {
			if !month.IsDir() {
				continue
			}
			files, err := os.ReadDir(filepath.Join(base, year.Name(), month.Name()))
			if err != nil {
				return nil, fmt.Errorf("repo.FileArchive.ListPayslips: %w", err)
			}
			for _, f := range files {
				if !f.Type().IsRegular() || !payslipListExts[extOf(f.Name())] {
					continue
				}
				payslips = append(payslips, domain.Payslip{
					Year:     year.Name(),
					Month:    month.Name(),
					Filename: f.Name(),
					Path:     year.Name() + "/" + month.Name() + "/" + f.Name(),
				})
			}
		}
	}
	return payslips, nil
}

func (a *diskArchive) ResolveDownload(id uuid.UUID, category domain.FileCategory, filename string) (string, error) {
	name := filepath.FromSlash(filename)
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("repo.FileArchive.ResolveDownload: %w: %q", domain.ErrInvalidPath, filename)
	}

	var dir string
	switch category {
	case domain.CategoryPhoto:
		dir = a.driverDir(id)
	case domain.CategoryDocument:
		dir = filepath.Join(a.driverDir(id), documentsDir)
	case domain.CategoryPayslip:
		dir = filepath.Join(a.driverDir(id), payslipsDir)
	default:
		return "", fmt.Errorf("repo.FileArchive.ResolveDownload: %w: unknown category %q", domain.ErrInvalidType, category)
	}
	if category != domain.CategoryPayslip && strings.ContainsRune(name, filepath.Separator) {
		return "", fmt.Errorf("repo.FileArchive.ResolveDownload: %w: %q", domain.ErrInvalidPath, filename)
	}

	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("repo.FileArchive.ResolveDownload: %w: %w", domain.ErrFileNotFound, domain.ErrNotFound)
	}
	return path, nil
}

func (a *diskArchive) DeleteDriverTree(id uuid.UUID) error {
	if err := os.RemoveAll(a.driverDir(id)); err != nil {
		return fmt.Errorf("repo.FileArchive.DeleteDriverTree: %w", err)
	}
	return nil
}

// uploadExt validates an upload and returns its lowercased extension.
func uploadExt(up domain.Upload) (string, error) {
	if up.Content == nil || up.Filename == "" {
		return "", domain.ErrNoFile
	}
	ext := extOf(up.Filename)
	if !allowedUploadExts[ext] {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidType, up.Filename)
	}
	return ext, nil
}

// extOf returns the lowercased text after the last dot, or "" without one.
func extOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// writeFile overwrites path with the contents of r.
func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
