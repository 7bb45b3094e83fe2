package middleware

import (
	"context"

	"github.com/angelmondragon/storefront/internal/policy"
)

type contextKey string

const (
	ctxIdentity  contextKey = "identity"
	ctxAccessID  contextKey = "access_id"
	ctxVisitorID contextKey = "visitor_id"
)

// IdentityFromContext returns the resolved requester, or the anonymous identity.
func IdentityFromContext(ctx context.Context) policy.Identity {
	if ctx == nil {
		return policy.Anonymous()
	}
	if v, ok := ctx.Value(ctxIdentity).(policy.Identity); ok {
		return v
	}
	return policy.Anonymous()
}

// AccessIDFromContext returns the session id (JWT jti) of the current request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

func VisitorIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxVisitorID).(string); ok {
		return v
	}
	return ""
}

// WithIdentity injects the requester and its session id into the context.
func WithIdentity(ctx context.Context, identity policy.Identity, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxIdentity, identity)
	return context.WithValue(ctx, ctxAccessID, accessID)
}

// WithVisitorID injects the visitor identifier used to key notices.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxVisitorID, visitorID)
}
