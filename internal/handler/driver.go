package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/esturismo/motoristas/internal/domain"
)

// uploadRoles are the multipart field names accepted for driver files.
var uploadRoles = append([]domain.FileRole{domain.RolePhoto}, domain.DocumentRoles...)

// ListDrivers handles GET /drivers.
// Each driver carries its license and course badges.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.drivers.List(r.Context()))
}

// SearchDrivers handles GET /drivers/search?q=.
// A missing or empty q returns every driver.
func (s *Server) SearchDrivers(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		badRequest(w, "invalid query parameter q")
		return
	}
	query := ""
	if q != nil {
		query = *q
	}
	writeJSON(w, http.StatusOK, s.drivers.Search(r.Context(), query))
}

// RegisterDriver handles POST /drivers (multipart/form-data).
func (s *Server) RegisterDriver(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}
	uploads, closeUploads, err := formUploads(r, uploadRoles)
	if err != nil {
		badRequest(w, "unreadable file upload")
		return
	}
	defer closeUploads()

	in := domain.DriverInput{
		Name:          r.FormValue("name"),
		BirthDate:     r.FormValue("birth_date"),
		TaxID:         r.FormValue("tax_id"),
		Phone:         r.FormValue("phone"),
		BondType:      r.FormValue("bond_type"),
		LicenseExpiry: r.FormValue("license_expiry"),
		CourseExpiry:  r.FormValue("course_expiry"),
	}
	created, err := s.drivers.Register(r.Context(), in, uploads)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetDriver handles GET /drivers/{id}.
// The response carries the driver, its alerts and its payslips.
func (s *Server) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid driver id")
		return
	}
	detail, err := s.drivers.Detail(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// updateDriverRequest is the JSON body of PUT /drivers/{id}.
// Omitted fields keep their stored values.
type updateDriverRequest struct {
	Name          *string `json:"name"`
	BirthDate     *string `json:"birth_date"`
	Phone         *string `json:"phone"`
	BondType      *string `json:"bond_type"`
	LicenseExpiry *string `json:"license_expiry"`
	CourseExpiry  *string `json:"course_expiry"`
}

// UpdateDriver handles PUT /drivers/{id}.
func (s *Server) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid driver id")
		return
	}
	var body updateDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body is required")
		return
	}

	updated, err := s.drivers.Update(r.Context(), id, domain.DriverUpdate{
		Name:          body.Name,
		BirthDate:     body.BirthDate,
		Phone:         body.Phone,
		BondType:      body.BondType,
		LicenseExpiry: body.LicenseExpiry,
		CourseExpiry:  body.CourseExpiry,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdateDriverFiles handles POST /drivers/{id}/files (multipart/form-data).
func (s *Server) UpdateDriverFiles(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid driver id")
		return
	}
	if !parseMultipart(w, r) {
		return
	}
	uploads, closeUploads, err := formUploads(r, uploadRoles)
	if err != nil {
		badRequest(w, "unreadable file upload")
		return
	}
	defer closeUploads()

	updated, err := s.drivers.UpdateFiles(r.Context(), id, uploads)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetDriverStatus handles PUT /drivers/{id}/status with {"status": "active"|"inactive"}.
func (s *Server) SetDriverStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid driver id")
		return
	}
	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body is required")
		return
	}

	updated, err := s.drivers.SetStatus(r.Context(), id, strings.TrimSpace(body.Status))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteDriver handles DELETE /drivers/{id}.
func (s *Server) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid driver id")
		return
	}
	if err := s.drivers.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
