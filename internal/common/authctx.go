package common

import "context"

type userIDKey struct{}

// WithUserID attaches the authenticated user's id to the context. An empty
// id is not stored so anonymous requests read back as absent.
func WithUserID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID reports the authenticated user's id, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
