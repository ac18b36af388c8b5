package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/esturismo/motoristas/internal/domain"
)

// DownloadFile handles GET /drivers/{id}/files/{category}/*.
// Category is photo, document or payslip; the wildcard is the file name, or
// {year}/{month}/{name} for payslips. The file is sent as an attachment.
func (s *Server) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid driver id")
		return
	}
	category := domain.FileCategory(chi.URLParam(r, "category"))

	path, err := s.drivers.ResolveDownload(r.Context(), id, category, chi.URLParam(r, "*"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		s.writeError(w, r, domain.ErrFileNotFound)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if mt, err := mimetype.DetectFile(path); err == nil {
		w.Header().Set("Content-Type", mt.String())
	}
	attachment(w, filepath.Base(path))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// attachment marks the response as a file download named name.
func attachment(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
}
