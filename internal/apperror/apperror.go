package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies pipeline failures. Remote stages degrade to fallbacks
// keyed on the kind; only validation and not-found reach the client as
// hard errors.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindQuotaExceeded Kind = "quota_exceeded"
	KindAgent         Kind = "agent"
	KindParse         Kind = "parse"
	KindInternal      Kind = "internal"
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func QuotaExceeded(message string, err error) *AppError {
	return &AppError{Kind: KindQuotaExceeded, Message: message, Err: err}
}

func Agent(message string, err error) *AppError {
	return &AppError{Kind: KindAgent, Message: message, Err: err}
}

func Parse(message string, err error) *AppError {
	return &AppError{Kind: KindParse, Message: message, Err: err}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// ClassifyRemote inspects a failed remote agent call and distinguishes
// credit exhaustion from generic failure. The hosted agent reports
// exhausted credits either with HTTP 402 or by mentioning credits in
// the error body.
func ClassifyRemote(statusCode int, body string) *AppError {
	lower := strings.ToLower(body)
	if statusCode == http.StatusPaymentRequired ||
		strings.Contains(lower, "credits") ||
		strings.Contains(lower, "exhausted") {
		return QuotaExceeded("API credits exhausted", fmt.Errorf("agent status %d: %s", statusCode, body))
	}
	return Agent("agent request failed", fmt.Errorf("agent status %d: %s", statusCode, body))
}
