package handler

import (
	"net/http"
	"os"
	"path/filepath"
)

// GetBackup handles GET /backup.
// It builds a full backup archive, streams it as an attachment and removes
// it once the response has been written.
func (s *Server) GetBackup(w http.ResponseWriter, r *http.Request) {
	path, err := s.backups.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer s.backups.Discard(r.Context(), path)

	f, err := os.Open(path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	attachment(w, filepath.Base(path))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
