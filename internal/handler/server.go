// Package handler implements the HTTP transport of the driver registry.
// All handlers are methods on Server. Methods are split into
// resource-specific files (driver.go, payslip.go, etc.) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
)

// DriverServicer defines the driver operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the filesystem.
type DriverServicer interface {
	Register(ctx context.Context, in domain.DriverInput, uploads map[domain.FileRole]domain.Upload) (domain.Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	Detail(ctx context.Context, id uuid.UUID) (domain.DriverDetail, error)
	List(ctx context.Context) []domain.DriverSummary
	Search(ctx context.Context, query string) []domain.Driver
	Update(ctx context.Context, id uuid.UUID, u domain.DriverUpdate) (domain.Driver, error)
	UpdateFiles(ctx context.Context, id uuid.UUID, uploads map[domain.FileRole]domain.Upload) (domain.Driver, error)
	AttachPayslip(ctx context.Context, id uuid.UUID, year, month string, up domain.Upload) (domain.Payslip, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Driver, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Dashboard(ctx context.Context) domain.DashboardStats
	ResolveDownload(ctx context.Context, id uuid.UUID, category domain.FileCategory, filename string) (string, error)
}

// BackupCreator builds a backup archive and removes it once delivered.
type BackupCreator interface {
	Create(ctx context.Context) (string, error)
	Discard(ctx context.Context, path string)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	drivers DriverServicer
	backups BackupCreator
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(drivers DriverServicer, backups BackupCreator, log *slog.Logger) *Server {
	return &Server{drivers: drivers, backups: backups, log: log}
}

// Handler returns the router for every API endpoint.
// Wire it in main.go with r.Mount("/", srv.Handler()).
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/dashboard", s.GetDashboard)
	r.Get("/backup", s.GetBackup)

	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", s.ListDrivers)
		r.Post("/", s.RegisterDriver)
		r.Get("/search", s.SearchDrivers)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDriver)
			r.Put("/", s.UpdateDriver)
			r.Delete("/", s.DeleteDriver)
			r.Put("/status", s.SetDriverStatus)
			r.Post("/files", s.UpdateDriverFiles)
			r.Get("/files/{category}/*", s.DownloadFile)
			r.Post("/payslips", s.AttachPayslip)
		})
	})
	return r
}
