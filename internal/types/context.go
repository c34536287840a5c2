package types

import (
	"context"
)

// ContextKey is the typed key for values carried on request contexts.
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxTenantID  ContextKey = "ctx_tenant_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxUserRole  ContextKey = "ctx_user_role"
)

// DefaultTenantID is used by scripts and tests that run outside a request.
const DefaultTenantID = "00000000-0000-0000-0000-000000000000"

// GetRequestID returns the request ID from the context, if set.
func GetRequestID(ctx context.Context) string {
	return getString(ctx, CtxRequestID)
}

// GetTenantID returns the tenant ID from the context, if set.
func GetTenantID(ctx context.Context) string {
	return getString(ctx, CtxTenantID)
}

// GetUserID returns the acting user ID from the context, if set.
func GetUserID(ctx context.Context) string {
	return getString(ctx, CtxUserID)
}

// GetUserRole returns the acting user's role from the context, if set.
func GetUserRole(ctx context.Context) string {
	return getString(ctx, CtxUserRole)
}

// SetRequestID returns a child context carrying the request ID.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxRequestID, id)
}

// SetTenantID returns a child context carrying the tenant ID.
func SetTenantID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxTenantID, id)
}

// SetUserID returns a child context carrying the acting user ID.
func SetUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxUserID, id)
}

// SetUserRole returns a child context carrying the acting user's role.
func SetUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, CtxUserRole, role)
}

func getString(ctx context.Context, key ContextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
