package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
	"github.com/esturismo/motoristas/internal/handler"
)

// mockDriverServicer is a test double for handler.DriverServicer.
// Set only the method fields your test needs.
type mockDriverServicer struct {
	register        func(ctx context.Context, in domain.DriverInput, uploads map[domain.FileRole]domain.Upload) (domain.Driver, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	detail          func(ctx context.Context, id uuid.UUID) (domain.DriverDetail, error)
	list            func(ctx context.Context) []domain.DriverSummary
	search          func(ctx context.Context, query string) []domain.Driver
	update          func(ctx context.Context, id uuid.UUID, u domain.DriverUpdate) (domain.Driver, error)
	updateFiles     func(ctx context.Context, id uuid.UUID, uploads map[domain.FileRole]domain.Upload) (domain.Driver, error)
	attachPayslip   func(ctx context.Context, id uuid.UUID, year, month string, up domain.Upload) (domain.Payslip, error)
	setStatus       func(ctx context.Context, id uuid.UUID, status string) (domain.Driver, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	dashboard       func(ctx context.Context) domain.DashboardStats
	resolveDownload func(ctx context.Context, id uuid.UUID, c domain.FileCategory, name string) (string, error)
}

func (m *mockDriverServicer) Register(ctx context.Context, in domain.DriverInput, uploads map[domain.FileRole]domain.Upload) (domain.Driver, error) {
	return m.register(ctx, in, uploads)
}
func (m *mockDriverServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}
func (m *mockDriverServicer) Detail(ctx context.Context, id uuid.UUID) (domain.DriverDetail, error) {
	return m.detail(ctx, id)
}
func (m *mockDriverServicer) List(ctx context.Context) []domain.DriverSummary { return m.list(ctx) }
func (m *mockDriverServicer) Search(ctx context.Context, query string) []domain.Driver {
	return m.search(ctx, query)
}
func (m *mockDriverServicer) Update(ctx context.Context, id uuid.UUID, u domain.DriverUpdate) (domain.Driver, error) {
	return m.update(ctx, id, u)
}
func (m *mockDriverServicer) UpdateFiles(ctx context.Context, id uuid.UUID, uploads map[domain.FileRole]domain.Upload) (domain.Driver, error) {
	return m.updateFiles(ctx, id, uploads)
}
func (m *mockDriverServicer) AttachPayslip(ctx context.Context, id uuid.UUID, year, month string, up domain.Upload) (domain.Payslip, error) {
	return m.attachPayslip(ctx, id, year, month, up)
}
func (m *mockDriverServicer) SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Driver, error) {
	return m.setStatus(ctx, id, status)
}
func (m *mockDriverServicer) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }
func (m *mockDriverServicer) Dashboard(ctx context.Context) domain.DashboardStats {
	return m.dashboard(ctx)
}
func (m *mockDriverServicer) ResolveDownload(ctx context.Context, id uuid.UUID, c domain.FileCategory, name string) (string, error) {
	return m.resolveDownload(ctx, id, c, name)
}

// compile-time check: mockDriverServicer must satisfy handler.DriverServicer.
var _ handler.DriverServicer = (*mockDriverServicer)(nil)

// mockBackupCreator is a test double for handler.BackupCreator.
type mockBackupCreator struct {
	create    func(ctx context.Context) (string, error)
	discarded []string
}

func (m *mockBackupCreator) Create(ctx context.Context) (string, error) { return m.create(ctx) }
func (m *mockBackupCreator) Discard(_ context.Context, path string) {
	m.discarded = append(m.discarded, path)
}

var _ handler.BackupCreator = (*mockBackupCreator)(nil)
