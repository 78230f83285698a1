package assetcheck

import (
	"errors"
	"fmt"
)

// Kind classifies why a candidate file was rejected.
type Kind string

const (
	KindUnsupportedFormat Kind = "unsupported_format"
	KindTooLarge          Kind = "too_large"
	KindBadDimensions     Kind = "bad_dimensions"
	KindCorruptFile       Kind = "corrupt_file"
)

// ValidationError reports a rejected candidate file with a stable kind and a
// human-readable reason identifying which rule failed.
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func reject(kind Kind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps a ValidationError from err if present.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
