package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/esturismo/motoristas/internal/domain"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temporary files. The overall size is capped by middleware.
const multipartMemory = 8 << 20

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already written; nothing left to report to.
	json.NewEncoder(w).Encode(v)
}

// parseMultipart parses a multipart body and renders the failure when it
// cannot: 413 when the body exceeds the upload limit, 400 otherwise.
func parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{Code: codeTooLarge, Message: "Arquivo excede o tamanho máximo"}})
		return false
	}
	badRequest(w, "multipart form expected")
	return false
}

// pathID binds the {id} path parameter into a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	return id, err
}

// formUploads collects the uploaded files present in the form, keyed by role.
// Callers must call the returned closer once the uploads are consumed.
func formUploads(r *http.Request, roles []domain.FileRole) (map[domain.FileRole]domain.Upload, func(), error) {
	uploads := map[domain.FileRole]domain.Upload{}
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, role := range roles {
		f, hdr, err := r.FormFile(string(role))
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads[role] = domain.Upload{Filename: hdr.Filename, Content: f}
	}
	return uploads, closeAll, nil
}
