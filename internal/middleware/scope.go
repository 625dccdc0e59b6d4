package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"timesheet-assistant/internal/model"
	pkgLog "timesheet-assistant/pkg/log"
	"timesheet-assistant/pkg/response"
)

// Identity headers set by the gateway in front of the REST API.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"
	HeaderRequestID = "X-Request-ID"
)

type scopeCtxKey struct{}

// Scope requires an X-User-ID header and stores the caller scope on the context.
func (mw Middleware) Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc := model.Scope{
			UserID:   userID,
			Username: strings.TrimSpace(c.GetHeader(HeaderUserName)),
			Email:    strings.TrimSpace(c.GetHeader(HeaderUserEmail)),
		}
		if sc.Username == "" {
			sc.Username = userID
		}

		c.Request = c.Request.WithContext(SetScope(c.Request.Context(), sc))
		c.Next()
	}
}

// Trace tags the request context with a trace id, reusing X-Request-ID when sent.
func (mw Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		ctx := context.WithValue(c.Request.Context(), pkgLog.TraceIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SetScope returns a copy of ctx carrying sc.
func SetScope(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, sc)
}

// GetScope reads the scope stored by Scope.
func GetScope(ctx context.Context) (model.Scope, bool) {
	sc, ok := ctx.Value(scopeCtxKey{}).(model.Scope)
	return sc, ok
}
