package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	SessionIDKey contextKey = "session_id"
)

// NewID returns a random UUID string used for session and request IDs.
func NewID() string {
	return uuid.New().String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, RequestIDKey)
}

func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

func SessionIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, SessionIDKey)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	id, ok := ctx.Value(key).(string)
	if !ok {
		return ""
	}
	return id
}
