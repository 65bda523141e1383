package requestctx

import "context"

type ctxKey string

const (
	correlationIDKey ctxKey = "correlation_id"
	userIDKey        ctxKey = "user_id"
	userRoleKey      ctxKey = "user_role"
)

// WithCorrelationID returns a new context with the provided correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID fetches the correlation ID from the context, if any.
func CorrelationID(ctx context.Context) string {
	if s, ok := ctx.Value(correlationIDKey).(string); ok {
		return s
	}
	return ""
}

// WithUser records the authenticated caller's identity and role, set by the
// auth middleware after the session token resolves to a user.
func WithUser(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// UserID returns the authenticated user's id, or 0 if unauthenticated.
func UserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}

// UserRole returns the authenticated user's role, or "" if unauthenticated.
func UserRole(ctx context.Context) string {
	if r, ok := ctx.Value(userRoleKey).(string); ok {
		return r
	}
	return ""
}
