package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rpggio/caredesk/internal/apierror"
)

// errorResponse wraps an API error body.
type errorResponse struct {
	Error *apierror.Error `json:"error"`
}

// WriteResult writes payload as a JSON response.
func WriteResult(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, payload)
}

// WriteError maps err and writes it. Server-side failures are logged with
// the underlying error, which the client never sees.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	apiErr := apierror.Map(err)
	if apiErr.Status >= http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, apiErr.Status, errorResponse{Error: apiErr})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
