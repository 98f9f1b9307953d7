package session

import "context"

type contextKey int

const idKey contextKey = iota

// WithID returns a context carrying session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFromContext extracts the session ID set by the session middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(idKey).(string)
	return id, ok && id != ""
}
