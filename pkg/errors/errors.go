// Package errors provides coded domain errors. Services wrap store and
// engine failures with a code so transport can translate them without
// inspecting concrete types.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers that need to branch on outcome.
type Code string

const (
	// CodeDomainViolation marks an assignment outside an attribute's
	// enumerated domain. Rejected before anything is persisted.
	CodeDomainViolation Code = "domain_violation"
	// CodeValidationFailed marks missing or malformed answers for a
	// specific submission context. Recoverable; drives a form re-render.
	CodeValidationFailed Code = "validation_failed"
	// CodeConfigInvalid marks a broken policy configuration (cyclic
	// dependency graph, registry gap). Fatal at startup.
	CodeConfigInvalid Code = "config_invalid"
	// CodeStaleState marks a lost optimistic-concurrency race. The caller
	// should re-fetch and retry.
	CodeStaleState Code = "stale_state"
	// CodeUnreachablePage marks navigation to a slug outside the current
	// sequence. Recovered by redirect, never surfaced raw.
	CodeUnreachablePage Code = "unreachable_page"
	// CodeClaimSubmitted marks a mutation attempted after submission froze
	// the claim.
	CodeClaimSubmitted Code = "claim_submitted"
	CodeNotFound       Code = "not_found"
	CodeInternal       Code = "internal"
)

// Error carries a code alongside the message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a coded error with no cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from err, or CodeInternal if err carries none.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// HasCode reports whether err (or anything it wraps) carries code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
