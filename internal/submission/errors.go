package submission

import (
	"errors"
	"fmt"
	"strings"

	"presskit/internal/catalog"
	"presskit/internal/services"
)

// NotReadyError reports locally detected precondition failures. No request
// was sent to the catalog.
type NotReadyError struct {
	Reasons []string
}

func (e *NotReadyError) Error() string {
	return "draft is not ready for submission: " + strings.Join(e.Reasons, "; ")
}

// Kind classifies a submission failure for the caller's recovery decision.
type Kind string

const (
	KindFieldRejected   Kind = "field_rejected"
	KindUnauthenticated Kind = "unauthenticated"
	KindRateLimited     Kind = "rate_limited"
	KindTransient       Kind = "transient"
	KindUnknown         Kind = "unknown"
)

// Error is a classified submission failure. FieldErrors is populated only for
// KindFieldRejected.
type Error struct {
	Kind        Kind
	FieldErrors map[string]string
	cause       error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("submission failed (%s): %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("submission failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// Retryable reports whether a later attempt with the same draft could
// succeed without changes.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransient || e.Kind == KindRateLimited
}

func classify(err error) *Error {
	classified := &Error{Kind: KindUnknown, cause: err}
	switch {
	case errors.Is(err, services.ErrRejected):
		classified.Kind = KindFieldRejected
		var rejection *catalog.RejectionError
		if errors.As(err, &rejection) {
			classified.FieldErrors = rejection.FieldErrors
		}
	case errors.Is(err, services.ErrUnauthenticated):
		classified.Kind = KindUnauthenticated
	case errors.Is(err, services.ErrRateLimited):
		classified.Kind = KindRateLimited
	case errors.Is(err, services.ErrTransient):
		classified.Kind = KindTransient
	}
	return classified
}
