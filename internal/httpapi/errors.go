package httpapi

import (
	"encoding/json"
	"net/http"

	"askd/pkg/types"
)

// HTTPError allows collaborators to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}
