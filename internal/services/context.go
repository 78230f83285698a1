package services

import "context"

type contextKey string

const (
	draftIDKey   contextKey = "draft_id"
	requestIDKey contextKey = "request_id"
)

// WithDraftID annotates context with the release draft identifier.
func WithDraftID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, draftIDKey, id)
}

// DraftIDFromContext extracts the draft identifier if present.
func DraftIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(draftIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
