package middleware

import (
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/gin-gonic/gin"
)

// Request headers carrying identity. Authentication itself happens at the
// gateway; this service trusts the forwarded identity headers.
const (
	HeaderTenantID  = "X-Tenant-ID"
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderRequestID = "X-Request-ID"
)

// ContextMiddleware copies identity headers into the request context so the
// service and repository layers can scope every operation by tenant.
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = types.GenerateUUID()
		}
		ctx = types.SetRequestID(ctx, requestID)

		tenantID := c.GetHeader(HeaderTenantID)
		if tenantID == "" {
			tenantID = types.DefaultTenantID
		}
		ctx = types.SetTenantID(ctx, tenantID)

		if userID := c.GetHeader(HeaderUserID); userID != "" {
			ctx = types.SetUserID(ctx, userID)
		}
		if role := c.GetHeader(HeaderUserRole); role != "" {
			ctx = types.SetUserRole(ctx, role)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(HeaderRequestID, requestID)
		c.Next()
	}
}
