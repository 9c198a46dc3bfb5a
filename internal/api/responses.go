package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/Wixxxxxx/mini-etf/pkg/errors"
)

// ErrorResponse is the JSON body of every non-2xx reply. Code carries the
// machine-readable taxonomy; Error is the human-readable message.
type ErrorResponse struct {
	Error string              `json:"error"`
	Code  apperrors.ErrorCode `json:"code"`
	Field string              `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, details *apperrors.ErrorDetails) {
	respondJSON(w, status, ErrorResponse{
		Error: details.Message,
		Code:  details.Code,
		Field: details.Field,
	})
}
