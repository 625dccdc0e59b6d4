package http

import (
	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods. Every route
// requires the caller identity headers.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	sessions := rg.Group("/sessions", mw.Scope(), mw.RateLimit())
	{
		sessions.POST("", h.Start)
		sessions.GET("/:id", h.Detail)
		sessions.POST("/:id/messages", h.Message)
		sessions.POST("/:id/chat", h.Chat)
		sessions.POST("/:id/restart", h.Restart)
		sessions.POST("/:id/retry", h.Retry)
		sessions.GET("/:id/notifications", h.Notifications)
	}

	rg.POST("/extract", mw.Scope(), mw.RateLimit(), h.Extract)
	rg.POST("/delivery/test", mw.Scope(), mw.RateLimit(), h.TestDelivery)
}
