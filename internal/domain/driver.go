// Package domain contains the core data types for the driver registry.
// This package depends only on uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Status is the activation state of a driver record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus accepts the two valid status values.
// Returns ErrInvalidStatus for anything else.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusInactive:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// DefaultBondType is applied to records persisted before the bond type existed.
const DefaultBondType = "registrado"

// FileRole is the logical role of a file attached to a driver.
type FileRole string

const (
	RolePhoto           FileRole = "photo"
	RoleLicense         FileRole = "license"
	RolePassengerCourse FileRole = "passenger_course"
	RoleResidenceProof  FileRole = "residence_proof"
)

// DocumentRoles are the roles stored under the driver's documents directory.
var DocumentRoles = []FileRole{RoleLicense, RolePassengerCourse, RoleResidenceProof}

// Driver is a single driver record.
// ID and TaxID are immutable after creation. Files maps a role to the stored
// file name under the driver's archive directory.
type Driver struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	BirthDate     string              `json:"birth_date"`
	TaxID         string              `json:"tax_id"`
	Phone         string              `json:"phone"`
	BondType      string              `json:"bond_type"`
	LicenseExpiry string              `json:"license_expiry,omitempty"`
	CourseExpiry  string              `json:"course_expiry,omitempty"`
	RegisteredAt  time.Time           `json:"registered_at"`
	Status        Status              `json:"status"`
	Files         map[FileRole]string `json:"files"`
}

// DriverInput carries the caller-supplied fields for registration.
type DriverInput struct {
	Name          string
	BirthDate     string
	TaxID         string
	Phone         string
	BondType      string
	LicenseExpiry string
	CourseExpiry  string
}

// DriverUpdate carries the mutable fields of an existing driver.
// Nil pointers leave the stored value unchanged.
type DriverUpdate struct {
	Name          *string
	BirthDate     *string
	Phone         *string
	BondType      *string
	LicenseExpiry *string
	CourseExpiry  *string
}

// Upload is an uploaded binary stream together with its original file name.
type Upload struct {
	Filename string
	Content  io.Reader
}

// FileCategory selects the archive area a download is resolved against.
type FileCategory string

const (
	CategoryPhoto    FileCategory = "photo"
	CategoryDocument FileCategory = "document"
	CategoryPayslip  FileCategory = "payslip"
)
