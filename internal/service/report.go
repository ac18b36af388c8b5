package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
	"github.com/esturismo/motoristas/internal/expiry"
)

// expiryField names one of the two tracked expiry dates and the alert labels
// shown for it.
type expiryField struct {
	date     func(domain.Driver) string
	expired  string
	expiring string
}

var (
	licenseField = expiryField{
		date:     func(d domain.Driver) string { return d.LicenseExpiry },
		expired:  "CNH vencida",
		expiring: "CNH vence em breve",
	}
	courseField = expiryField{
		date:     func(d domain.Driver) string { return d.CourseExpiry },
		expired:  "Curso vencido",
		expiring: "Curso vence em breve",
	}
)

func (s *DriverService) classify(date string) expiry.Status {
	return expiry.Classify(date, s.now(), s.warnWindowDays)
}

// Detail returns a driver with its expiry alerts and payslips, newest first.
// A payslip listing failure is logged and yields no payslips.
// Returns domain.ErrNotFound if the driver does not exist.
func (s *DriverService) Detail(ctx context.Context, id uuid.UUID) (domain.DriverDetail, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.DriverDetail{}, fmt.Errorf("service.DriverService.Detail: %w", err)
	}

	payslips, err := s.files.ListPayslips(id)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to list payslips", "id", id, "error", err)
		s.metrics.IncrementStoreFailure("list_payslips")
		payslips = []domain.Payslip{}
	}
	sortPayslips(payslips)

	return domain.DriverDetail{Driver: d, Alerts: s.alerts(d), Payslips: payslips}, nil
}

// List returns every driver with its license and course badges.
func (s *DriverService) List(ctx context.Context) []domain.DriverSummary {
	drivers := s.drivers.List(ctx)
	out := make([]domain.DriverSummary, len(drivers))
	for i, d := range drivers {
		out[i] = domain.DriverSummary{
			Driver:        d,
			LicenseStatus: string(s.classify(d.LicenseExpiry)),
			CourseStatus:  string(s.classify(d.CourseExpiry)),
		}
	}
	return out
}

// Dashboard counts drivers and expired or expiring dates. A driver with both
// dates expired adds two to Expired.
func (s *DriverService) Dashboard(ctx context.Context) domain.DashboardStats {
	var stats domain.DashboardStats
	for _, d := range s.drivers.List(ctx) {
		stats.TotalDrivers++
		if d.Status == domain.StatusInactive {
			stats.InactiveDrivers++
		} else {
			stats.ActiveDrivers++
		}
		for _, f := range []expiryField{licenseField, courseField} {
			switch s.classify(f.date(d)) {
			case expiry.Expired:
				stats.Expired++
			case expiry.Expiring:
				stats.Expiring++
			}
		}
	}
	return stats
}

func (s *DriverService) alerts(d domain.Driver) []domain.Alert {
	alerts := []domain.Alert{}
	for _, f := range []expiryField{licenseField, courseField} {
		switch s.classify(f.date(d)) {
		case expiry.Expired:
			alerts = append(alerts, domain.Alert{Label: f.expired, Severity: domain.SeverityDanger})
		case expiry.Expiring:
			alerts = append(alerts, domain.Alert{Label: f.expiring, Severity: domain.SeverityWarning})
		}
	}
	return alerts
}

// sortPayslips orders by year and month descending, then by file name.
func sortPayslips(p []domain.Payslip) {
	sort.Slice(p, func(i, j int) bool {
		if p[i].Year != p[j].Year {
			return p[i].Year > p[j].Year
		}
		if p[i].Month != p[j].Month {
			return p[i].Month > p[j].Month
		}
		return p[i].Filename < p[j].Filename
	})
}
