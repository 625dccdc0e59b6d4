package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/conversation"
	convHTTP "timesheet-assistant/internal/conversation/delivery/http"
	tgDelivery "timesheet-assistant/internal/conversation/delivery/telegram"
	"timesheet-assistant/internal/middleware"
	"timesheet-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware
	ready       func(ctx context.Context) error

	// Conversation domain
	conversationUC  conversation.UseCase
	inbox           convHTTP.Inbox
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Config

	// ReadyCheck backs /ready. Nil always reports ready.
	ReadyCheck func(ctx context.Context) error

	// Conversation domain
	ConversationUC conversation.UseCase
	Inbox          convHTTP.Inbox

	// TelegramHandler is optional. The webhook route is skipped when nil.
	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance and maps its routes.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		ready:           cfg.ReadyCheck,
		conversationUC:  cfg.ConversationUC,
		inbox:           cfg.Inbox,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mw = middleware.New(logger, cfg.Middleware)
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.conversationUC == nil {
		return errors.New("conversation use case is required")
	}
	return nil
}
