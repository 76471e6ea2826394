package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/lcsmith2/markovcity/pkg/errors"
)

// errorResponse is the JSON body returned for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeAppError maps structured error codes to HTTP statuses. Errors without
// a recognized code are treated as internal and their details are not leaked.
func (s *Server) writeAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error", Code: string(apperrors.ErrCodeInternal)})
		return
	}
	writeJSON(w, status, errorResponse{Error: apperrors.UserMessage(err), Code: string(code)})
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidDimensions,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeInvalidChain,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidSeed,
		apperrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeChainNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
