package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	tgDelivery "timesheet-assistant/internal/conversation/delivery/telegram"
	"timesheet-assistant/internal/model"
)

const apiPrefix = "/api/v1"

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.Trace())
	if srv.mode == gin.DebugMode {
		srv.gin.Use(gin.Logger())
	}

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "httpserver: running in production")
	} else {
		srv.l.Infof(ctx, "httpserver: running in %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv *HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	api := srv.gin.Group(apiPrefix)
	if err := srv.setupConversationDomain(ctx, api); err != nil {
		return err
	}

	if srv.telegramHandler != nil {
		tgDelivery.RegisterRoutes(srv.gin, srv.telegramHandler, srv.mw)
		srv.l.Infof(ctx, "httpserver: telegram webhook registered at POST %s", tgDelivery.WebhookPath)
	} else {
		srv.l.Infof(ctx, "httpserver: telegram not configured, skipping webhook route")
	}

	return nil
}
