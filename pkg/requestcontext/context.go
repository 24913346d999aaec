// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Context keys and getters live here, free of net/http dependencies, so services
// can read values set by middleware without pulling in transport code. Tests use
// the With* setters to inject values directly.
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	adminUserKey   struct{}
)

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like workers and tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// AdminUser retrieves the authenticated admin username from the context.
func AdminUser(ctx context.Context) string {
	if user, ok := ctx.Value(adminUserKey{}).(string); ok {
		return user
	}
	return ""
}

// WithAdminUser injects an authenticated admin username into the context.
func WithAdminUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, adminUserKey{}, user)
}
