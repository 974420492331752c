package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ymori/wasuremono/internal/checklist"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("Encoding response failed", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service failure to a response: validation rejections
// surface verbatim as 400s, everything else is a logged 500 with a generic
// message.
func serviceError(w http.ResponseWriter, err error, fallback string) {
	if checklist.IsValidation(err) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error(fallback, "error", err)
	jsonError(w, http.StatusInternalServerError, fallback)
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
