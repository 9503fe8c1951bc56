package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/glimpsehq/api/internal/common"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeSuccess writes the uniform success envelope with extra fields merged in.
func writeSuccess(w http.ResponseWriter, status int, fields map[string]any) {
	payload := map[string]any{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	writeJSON(w, status, payload)
}

// writeError sends the uniform failure envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}

// writeServiceError maps a classified service error to its status code.
// Upstream and unclassified failures get a generic message; the detail is
// logged, never echoed.
func (r *Router) writeServiceError(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, common.ErrNotFound.Error())
	case errors.Is(err, common.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrUpstream):
		r.logger.Error("upstream failure", "path", req.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, common.ErrUpstream.Error())
	default:
		r.logger.Error("unhandled error", "path", req.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
