package handler

import (
	"net/http"

	"github.com/esturismo/motoristas/internal/domain"
)

// ErrorDetail is the machine-readable code and human message of a failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// failure is the HTTP rendering of one error kind.
type failure struct {
	status  int
	message string
}

// failures maps each surfaced error kind to its status and user message.
var failures = map[domain.Kind]failure{
	domain.ErrNotFound:       {http.StatusNotFound, "Motorista não encontrado"},
	domain.ErrFileNotFound:   {http.StatusNotFound, "Arquivo não encontrado"},
	domain.ErrInvalidTaxID:   {http.StatusUnprocessableEntity, "CPF inválido"},
	domain.ErrDuplicateTaxID: {http.StatusConflict, "CPF já cadastrado"},
	domain.ErrInvalidStatus:  {http.StatusBadRequest, "Status inválido"},
	domain.ErrMissingFields:  {http.StatusBadRequest, "Ano e mês são obrigatórios"},
	domain.ErrNoFile:         {http.StatusBadRequest, "Nenhum arquivo enviado"},
	domain.ErrInvalidType:    {http.StatusBadRequest, "Tipo de arquivo não permitido"},
	domain.ErrInvalidPeriod:  {http.StatusBadRequest, "Ano ou mês inválido"},
	domain.ErrInvalidPath:    {http.StatusBadRequest, "Nome de arquivo inválido"},
}

const (
	codeInternal   = "internal_error"
	codeBadRequest = "bad_request"
	codeTooLarge   = "too_large"
)

// writeError renders err. Errors without a known kind are logged and
// reported as a generic 500 so internals never leak to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	f, ok := failures[kind]
	if !ok {
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: codeInternal, Message: "Erro interno do servidor"}})
		return
	}
	writeJSON(w, f.status, ErrorResponse{Error: ErrorDetail{Code: string(kind), Message: f.message}})
}

// badRequest renders a request rejected before reaching the service layer,
// e.g. a malformed body or path parameter.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{Code: codeBadRequest, Message: message}})
}
