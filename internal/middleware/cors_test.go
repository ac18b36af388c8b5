package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esturismo/motoristas/internal/middleware"
)

const frontendOrigin = "http://localhost:5173"

// downloadHandler answers like the file download route: an attachment.
var downloadHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="holerite_2025_03.pdf"`)
	w.WriteHeader(http.StatusOK)
})

// TestCORSHandler_PayslipUploadPreflight verifies the preflight a browser
// sends before posting a payslip form from the frontend origin.
func TestCORSHandler_PayslipUploadPreflight(t *testing.T) {
	h := middleware.NewCORSHandler([]string{frontendOrigin})(downloadHandler)

	req := httptest.NewRequest(http.MethodOptions, "/drivers/"+driverID+"/payslips", nil)
	req.Header.Set("Origin", frontendOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	// Browsers send Access-Control-Request-Headers in lowercase.
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, rec.Code == http.StatusNoContent || rec.Code == http.StatusOK,
		"expected 2xx for OPTIONS preflight, got %d", rec.Code)
	assert.Equal(t, frontendOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

// TestCORSHandler_DeleteDriverPreflight verifies that permanent deletion is
// an allowed cross-origin method.
func TestCORSHandler_DeleteDriverPreflight(t *testing.T) {
	h := middleware.NewCORSHandler([]string{frontendOrigin})(downloadHandler)

	req := httptest.NewRequest(http.MethodOptions, "/drivers/"+driverID, nil)
	req.Header.Set("Origin", frontendOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

// TestCORSHandler_DownloadExposesFilename verifies that a cross-origin
// download lets the client read Content-Disposition.
func TestCORSHandler_DownloadExposesFilename(t *testing.T) {
	h := middleware.NewCORSHandler([]string{frontendOrigin})(downloadHandler)

	req := httptest.NewRequest(http.MethodGet, "/drivers/"+driverID+"/files/payslip/2025/03/holerite_2025_03.pdf", nil)
	req.Header.Set("Origin", frontendOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, frontendOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Disposition", rec.Header().Get("Access-Control-Expose-Headers"))
}

// TestCORSHandler_DisallowedOrigin verifies that a backup requested from an
// unknown origin does not receive the Access-Control-Allow-Origin header.
func TestCORSHandler_DisallowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{frontendOrigin})(downloadHandler)

	req := httptest.NewRequest(http.MethodGet, "/backup", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
