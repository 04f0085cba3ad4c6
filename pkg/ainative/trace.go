package ainative

import "context"

type requestIDKey struct{}

// WithRequestID stores a correlation ID in the context. The client sends it
// as the X-Request-ID header instead of generating one, so callers can tie
// SDK requests to their own traces.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext extracts the correlation ID from the context, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
