package helpers

import (
	"encoding/json"
	"net/http"
)

// Envelope carries the resource fields of a success response, keyed by
// resource name (e.g. "event", "registrations").
type Envelope map[string]any

// WriteSuccess writes the standard response envelope with success=true, an
// optional message, and the given resource fields merged in at the top level.
func WriteSuccess(w http.ResponseWriter, statusCode int, message string, fields Envelope) {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes the standard response envelope with success=false and the
// given error message.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}
