package helpers

import (
	"net/http"

	"github.com/google/uuid"
)

// PathID reads the named path value and requires it to be a UUID. On a
// missing or malformed value it writes a 400 JSON error and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := r.PathValue(name)
	if _, err := uuid.Parse(raw); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid "+name)
		return "", false
	}
	return raw, true
}
