package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
	"github.com/esturismo/motoristas/internal/repo"
)

// mockDriverRepo is a hand-written test double for repo.DriverRepo.
// Each method is a function field; set only the ones your test needs.
type mockDriverRepo struct {
	list    func(ctx context.Context) []domain.Driver
	getByID func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	save    func(ctx context.Context, d domain.Driver) error
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDriverRepo) List(ctx context.Context) []domain.Driver { return m.list(ctx) }
func (m *mockDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}
func (m *mockDriverRepo) Save(ctx context.Context, d domain.Driver) error { return m.save(ctx, d) }
func (m *mockDriverRepo) Delete(ctx context.Context, id uuid.UUID) error  { return m.delete(ctx, id) }
func (m *mockDriverRepo) Path() string                                    { return "" }

// compile-time check: mockDriverRepo must satisfy repo.DriverRepo.
var _ repo.DriverRepo = (*mockDriverRepo)(nil)

// mockFileArchive is a hand-written test double for repo.FileArchive.
type mockFileArchive struct {
	ensureDriverTree func(id uuid.UUID) error
	storeFile        func(id uuid.UUID, role domain.FileRole, up domain.Upload) (string, error)
	storePayslip     func(id uuid.UUID, year, month string, up domain.Upload) (string, error)
	listPayslips     func(id uuid.UUID) ([]domain.Payslip, error)
	resolveDownload  func(id uuid.UUID, c domain.FileCategory, name string) (string, error)
	deleteDriverTree func(id uuid.UUID) error
}

func (m *mockFileArchive) Root() string                        { return "" }
func (m *mockFileArchive) EnsureDriverTree(id uuid.UUID) error { return m.ensureDriverTree(id) }
func (m *mockFileArchive) DeleteDriverTree(id uuid.UUID) error { return m.deleteDriverTree(id) }
func (m *mockFileArchive) ListPayslips(id uuid.UUID) ([]domain.Payslip, error) {
	return m.listPayslips(id)
}
func (m *mockFileArchive) StoreFile(id uuid.UUID, role domain.FileRole, up domain.Upload) (string, error) {
	return m.storeFile(id, role, up)
}
func (m *mockFileArchive) StorePayslip(id uuid.UUID, year, month string, up domain.Upload) (string, error) {
	return m.storePayslip(id, year, month, up)
}
func (m *mockFileArchive) ResolveDownload(id uuid.UUID, c domain.FileCategory, name string) (string, error) {
	return m.resolveDownload(id, c, name)
}

// compile-time check: mockFileArchive must satisfy repo.FileArchive.
var _ repo.FileArchive = (*mockFileArchive)(nil)

// memRepo returns a mockDriverRepo backed by an in-memory slice.
func memRepo(drivers ...domain.Driver) *mockDriverRepo {
	store := append([]domain.Driver{}, drivers...)
	return &mockDriverRepo{
		list: func(_ context.Context) []domain.Driver { return append([]domain.Driver{}, store...) },
		getByID: func(_ context.Context, id uuid.UUID) (domain.Driver, error) {
			for _, d := range store {
				if d.ID == id {
					return d, nil
				}
			}
			return domain.Driver{}, domain.ErrNotFound
		},
		save: func(_ context.Context, d domain.Driver) error {
			for i := range store {
				if store[i].ID == d.ID {
					store[i] = d
					return nil
				}
			}
			store = append(store, d)
			return nil
		},
		delete: func(_ context.Context, id uuid.UUID) error {
			for i := range store {
				if store[i].ID == id {
					store = append(store[:i], store[i+1:]...)
					return nil
				}
			}
			return domain.ErrNotFound
		},
	}
}

// noopArchive accepts every call and stores nothing.
func noopArchive() *mockFileArchive {
	return &mockFileArchive{
		ensureDriverTree: func(uuid.UUID) error { return nil },
		storeFile: func(id uuid.UUID, role domain.FileRole, _ domain.Upload) (string, error) {
			return string(role) + "_" + id.String() + ".pdf", nil
		},
		storePayslip: func(_ uuid.UUID, y, m string, _ domain.Upload) (string, error) {
			return "holerite_" + y + "_" + m + ".pdf", nil
		},
		listPayslips:     func(uuid.UUID) ([]domain.Payslip, error) { return []domain.Payslip{}, nil },
		deleteDriverTree: func(uuid.UUID) error { return nil },
	}
}
