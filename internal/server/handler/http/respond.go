package http

import (
	"encoding/json"
	"net/http"

	"github.com/merchco/counterpos/internal/apperr"
)

// writeJSON encodes v as the response body with the given status code.
// HTML escaping is off so product names and messages pass through
// unmangled.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// writeError maps the error kind to an HTTP status and writes the body
// {"error": message, "code": kind}. The message is the stable
// human-readable text; the code is for machine consumption.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	msg := err.Error()
	switch kind {
	case apperr.KindNotAuthenticated:
		status = http.StatusForbidden
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInternal:
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{
		"error": msg,
		"code":  string(kind),
	})
}
