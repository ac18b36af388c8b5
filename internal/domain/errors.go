package domain

import "errors"

// Kind is the failure kind of a surfaced operation error.
// Kinds are themselves errors so they can be wrapped with %w and matched
// with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// ErrNotFound is returned when the requested driver or file does not exist.
	// Handlers map this to HTTP 404.
	ErrNotFound Kind = "not_found"
	// ErrFileNotFound is returned when the driver exists but the requested
	// file does not. It is always wrapped together with ErrNotFound.
	ErrFileNotFound Kind = "file_not_found"
	// ErrInvalidTaxID is returned when a CPF fails the checksum.
	ErrInvalidTaxID Kind = "invalid_taxid"
	// ErrDuplicateTaxID is returned when a CPF is already registered.
	ErrDuplicateTaxID Kind = "duplicate_taxid"
	// ErrInvalidStatus is returned for a status outside active/inactive.
	ErrInvalidStatus Kind = "invalid_status"
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields Kind = "missing_fields"
	// ErrNoFile is returned when an upload was expected but none was sent.
	ErrNoFile Kind = "no_file"
	// ErrInvalidType is returned for a file extension outside the allowed set.
	ErrInvalidType Kind = "invalid_type"
	// ErrInvalidPeriod is returned for a payslip year or month that is not a date part.
	ErrInvalidPeriod Kind = "invalid_period"
	// ErrInvalidPath is returned for a download file name escaping its directory.
	ErrInvalidPath Kind = "invalid_path"
)

// KindOf returns the Kind wrapped in err, or "" when err carries none.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}
