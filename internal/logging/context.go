package logging

import (
	"context"
	"log/slog"

	"presskit/internal/services"
)

// WithContext derives a logger carrying any draft and request identifiers
// stamped on the context. If logger is nil, a no-op logger is returned.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	if ctx == nil {
		return logger
	}
	if id, ok := services.DraftIDFromContext(ctx); ok {
		logger = logger.With(String(FieldDraftID, id))
	}
	if id, ok := services.RequestIDFromContext(ctx); ok {
		logger = logger.With(String(FieldRequestID, id))
	}
	return logger
}
