package handler

import (
	"errors"
	"net/http"

	"github.com/esturismo/motoristas/internal/domain"
)

// payslipField is the multipart field carrying the payslip file.
const payslipField = "file"

// AttachPayslip handles POST /drivers/{id}/payslips (multipart/form-data
// with year, month and file).
func (s *Server) AttachPayslip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid driver id")
		return
	}
	if !parseMultipart(w, r) {
		return
	}

	var up domain.Upload
	f, hdr, err := r.FormFile(payslipField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// An empty Upload is reported as no_file by the service.
	case err != nil:
		badRequest(w, "unreadable file upload")
		return
	default:
		defer f.Close()
		up = domain.Upload{Filename: hdr.Filename, Content: f}
	}

	p, err := s.drivers.AttachPayslip(r.Context(), id, r.FormValue("year"), r.FormValue("month"), up)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
