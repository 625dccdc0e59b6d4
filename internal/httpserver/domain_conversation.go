package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	convHTTP "timesheet-assistant/internal/conversation/delivery/http"
)

// setupConversationDomain registers the REST surface of the conversation
// domain under /api/v1.
func (srv *HTTPServer) setupConversationDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := convHTTP.New(srv.l, srv.conversationUC, srv.inbox)
	convHTTP.RegisterRoutes(api, h, srv.mw)

	srv.l.Infof(ctx, "httpserver: conversation routes registered under %s", apiPrefix)
	return nil
}
