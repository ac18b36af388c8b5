package middleware_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esturismo/motoristas/internal/config"
	"github.com/esturismo/motoristas/internal/middleware"
)

// uploadHandler parses the multipart form the way the registration and
// payslip handlers do, answering 413 when the body cannot be read.
var uploadHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusCreated)
})

// payslipForm builds a payslip upload whose file part holds size bytes.
func payslipForm(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("year", "2025"))
	require.NoError(t, mw.WriteField("month", "03"))
	fw, err := mw.CreateFormFile("file", "holerite.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4\n" + strings.Repeat("x", size)))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// uploadLimit loads the configured limit with MAX_UPLOAD_MB=1.
func uploadLimit(t *testing.T) int64 {
	t.Helper()
	t.Setenv("MAX_UPLOAD_MB", "1")
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg.MaxUploadBytes
}

// TestMaxBodySizeHandler_PayslipWithinLimit verifies that an upload below
// MAX_UPLOAD_MB reaches the handler.
func TestMaxBodySizeHandler_PayslipWithinLimit(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(uploadLimit(t))(uploadHandler)

	body, ct := payslipForm(t, 512<<10)
	req := httptest.NewRequest(http.MethodPost, "/drivers/"+driverID+"/payslips", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

// TestMaxBodySizeHandler_PayslipContentLengthExceedsLimit verifies that an
// upload advertising more than MAX_UPLOAD_MB is rejected before the form is
// parsed.
func TestMaxBodySizeHandler_PayslipContentLengthExceedsLimit(t *testing.T) {
	parsed := false
	h := middleware.NewMaxBodySizeHandler(uploadLimit(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parsed = true
		uploadHandler(w, r)
	}))

	body, ct := payslipForm(t, 2<<20)
	req := httptest.NewRequest(http.MethodPost, "/drivers/"+driverID+"/payslips", body)
	req.Header.Set("Content-Type", ct)
	req.ContentLength = int64(body.Len())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, parsed)
}

// TestMaxBodySizeHandler_StreamedRegistrationExceedsLimit verifies that a
// driver registration of unknown length fails once MAX_UPLOAD_MB is read.
func TestMaxBodySizeHandler_StreamedRegistrationExceedsLimit(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(uploadLimit(t))(uploadHandler)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Maria Souza"))
	require.NoError(t, mw.WriteField("tax_id", "111.444.777-35"))
	fw, err := mw.CreateFormFile("license", "cnh.pdf")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("x"), 2<<20))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/drivers", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
