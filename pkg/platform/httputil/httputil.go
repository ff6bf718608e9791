// Package httputil holds the JSON helpers shared by every handler.
package httputil

import (
	"encoding/json"
	"net/http"

	pkgerrors "claimflow/pkg/errors"
)

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads the request body into a T. A malformed body is reported
// to the client; the second return tells the handler to stop.
func Decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		WriteError(w, pkgerrors.Wrap(err, pkgerrors.CodeValidationFailed, "malformed request body"))
		return v, false
	}
	return v, true
}

// WriteError translates a coded error into the JSON error envelope.
// Internal errors omit the description so storage details never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := pkgerrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if status := StatusOf(code); status < http.StatusInternalServerError {
		body["error_description"] = err.Error()
		WriteJSON(w, status, body)
		return
	}
	WriteJSON(w, http.StatusInternalServerError, body)
}

// StatusOf maps an error code to its HTTP status.
func StatusOf(code pkgerrors.Code) int {
	switch code {
	case pkgerrors.CodeValidationFailed, pkgerrors.CodeDomainViolation:
		return http.StatusUnprocessableEntity
	case pkgerrors.CodeNotFound:
		return http.StatusNotFound
	case pkgerrors.CodeStaleState, pkgerrors.CodeClaimSubmitted:
		return http.StatusConflict
	case pkgerrors.CodeUnreachablePage:
		return http.StatusSeeOther
	default:
		return http.StatusInternalServerError
	}
}
