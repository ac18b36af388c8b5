package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
)

// AttachPayslip archives a payslip for the given year and month.
// A one-digit month is zero padded, so "3" and "03" address the same slot.
// Returns domain.ErrNotFound, domain.ErrMissingFields when year or month is
// empty, domain.ErrInvalidPeriod when they are not a 4-digit year and a month
// from 1 to 12, and domain.ErrNoFile or domain.ErrInvalidType for file problems.
func (s *DriverService) AttachPayslip(ctx context.Context, id uuid.UUID, year, month string, up domain.Upload) (domain.Payslip, error) {
	if _, err := s.drivers.GetByID(ctx, id); err != nil {
		return domain.Payslip{}, fmt.Errorf("service.DriverService.AttachPayslip: %w", err)
	}

	year, month = strings.TrimSpace(year), strings.TrimSpace(month)
	if year == "" || month == "" {
		return domain.Payslip{}, fmt.Errorf("service.DriverService.AttachPayslip: %w: year and month are required", domain.ErrMissingFields)
	}
	month, err := normalizePeriod(year, month)
	if err != nil {
		return domain.Payslip{}, fmt.Errorf("service.DriverService.AttachPayslip: %w", err)
	}

	name, err := s.files.StorePayslip(id, year, month, up)
	if err != nil {
		return domain.Payslip{}, fmt.Errorf("service.DriverService.AttachPayslip: %w", err)
	}

	s.metrics.IncrementPayslips()
	s.log.InfoContext(ctx, "payslip stored", "id", id, "year", year, "month", month, "name", name)
	return domain.Payslip{
		Year:     year,
		Month:    month,
		Filename: name,
		Path:     year + "/" + month + "/" + name,
	}, nil
}

// normalizePeriod validates year and month and returns the two-digit month.
func normalizePeriod(year, month string) (string, error) {
	if len(year) != 4 || !allDigits(year) {
		return "", fmt.Errorf("%w: year %q", domain.ErrInvalidPeriod, year)
	}
	m, err := strconv.Atoi(month)
	if err != nil || !allDigits(month) || len(month) > 2 || m < 1 || m > 12 {
		return "", fmt.Errorf("%w: month %q", domain.ErrInvalidPeriod, month)
	}
	return fmt.Sprintf("%02d", m), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
