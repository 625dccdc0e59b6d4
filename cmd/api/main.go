package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"timesheet-assistant/config"
	_ "timesheet-assistant/docs" // Swagger docs
	"timesheet-assistant/internal/conversation"
	tgDelivery "timesheet-assistant/internal/conversation/delivery/telegram"
	"timesheet-assistant/internal/conversation/repository"
	fileRepo "timesheet-assistant/internal/conversation/repository/file"
	memoryRepo "timesheet-assistant/internal/conversation/repository/memory"
	sqliteRepo "timesheet-assistant/internal/conversation/repository/sqlite"
	"timesheet-assistant/internal/conversation/usecase"
	"timesheet-assistant/internal/httpserver"
	"timesheet-assistant/internal/middleware"
	"timesheet-assistant/internal/notification"
	"timesheet-assistant/internal/options"
	"timesheet-assistant/internal/submission"
	"timesheet-assistant/pkg/gcalendar"
	"timesheet-assistant/pkg/llmprovider"
	"timesheet-assistant/pkg/log"
	"timesheet-assistant/pkg/openai"
	"timesheet-assistant/pkg/telegram"
)

// @title       Timesheet Assistant API
// @description Conversational time-entry capture over REST and Telegram, with webhook and calendar delivery.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Timesheet Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Session storage
	repo, storageReady, closeRepo, err := openRepository(cfg.Session)
	if err != nil {
		logger.Errorf(ctx, "Failed to open session storage: %v", err)
		return
	}
	defer closeRepo()
	logger.Infof(ctx, "Session storage: %s", cfg.Session.Backend)

	// 4. Option lists
	optionSource := options.New(cfg.Options)

	// 5. Delivery
	var sink submission.Sink
	if url := cfg.DeliveryURL(); url != "" {
		sink = submission.NewWebhookSink(url, cfg.Delivery.APIKey, nil)
		logger.Infof(ctx, "Delivery endpoint: %s", url)
	} else {
		logger.Warn(ctx, "Delivery disabled: confirmed entries will be skipped")
	}

	policy := submission.DefaultPolicy()
	policy.MaxAttempts = cfg.Delivery.RetryAttempts
	policy.InitialDelay = cfg.Delivery.InitialDelay
	policy.MaxDelay = cfg.Delivery.MaxDelay
	deliveryCfg := submission.Config{Policy: policy, AttemptTimeout: cfg.Delivery.AttemptTimeout}

	primary, err := submission.NewService(sink, deliveryCfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Invalid delivery policy: %v", err)
		return
	}

	// Google Calendar mirror (optional)
	var mirrors []submission.Deliverer
	if cfg.Calendar.CalendarID != "" && cfg.Calendar.CredentialsPath != "" {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.Calendar.CredentialsPath, cfg.Calendar.TokenPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
			logger.Warn(ctx, "→ Run `timesheet auth calendar <credentials.json>` to generate a token")
		} else {
			calendarSink := submission.NewCalendarSink(calendarClient, cfg.Calendar.CalendarID, cfg.Calendar.Timezone)
			mirror, mErr := submission.NewService(calendarSink, deliveryCfg, logger)
			if mErr != nil {
				logger.Errorf(ctx, "Invalid delivery policy: %v", mErr)
				return
			}
			mirrors = append(mirrors, mirror)
			logger.Info(ctx, "✅ Google Calendar mirror initialized")
		}
	}

	// 6. Telegram bot (optional)
	var bot *telegram.Bot
	if cfg.Telegram.BotToken != "" {
		bot = telegram.NewBot(cfg.Telegram.BotToken)
	}

	// 7. Notifications and dispatcher
	inbox := notification.NewInbox(logger, 0, 0)
	notifiers := notification.Fanout{inbox}
	if bot != nil {
		notifiers = append(notifiers, tgDelivery.NewNotifier(logger, bot))
	}
	dispatcher := submission.NewDispatcher(primary, notifiers, logger, mirrors...)

	// 8. Text generation (optional, enables open-ended mode)
	var generator conversation.Generator
	if cfg.HasLLM() {
		providers, pErr := llmprovider.InitializeProviders(&cfg.LLM)
		if pErr != nil {
			logger.Warnf(ctx, "LLM providers not available: %v", pErr)
		} else {
			manager := llmprovider.NewManager(providers, llmprovider.ManagerConfig(cfg.LLM), logger)
			generator = usecase.NewGenerator(manager, optionSource)
			logger.Infof(ctx, "✅ %d LLM provider(s) initialized", len(providers))
		}
	} else {
		logger.Warn(ctx, "No LLM provider configured: open-ended mode is unavailable")
	}

	// 9. Conversation use case
	conversationUC := usecase.New(logger, usecase.Deps{
		Repo:       repo,
		Options:    optionSource,
		Generator:  generator,
		Dispatcher: dispatcher,
		Pinger:     primary,
	})

	// 10. Telegram delivery
	var telegramHandler tgDelivery.Handler
	if bot != nil {
		var transcriber tgDelivery.Transcriber
		if key := openAIKey(cfg.LLM); key != "" {
			client, oErr := openai.New(openai.Config{APIKey: key})
			if oErr != nil {
				logger.Warnf(ctx, "Voice transcription not available: %v", oErr)
			} else {
				transcriber = client
			}
		}
		telegramHandler = tgDelivery.New(logger, conversationUC, bot, transcriber)
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 11. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware: middleware.Config{
			RateLimitPerMin: cfg.RateLimit.PerMin,
			TelegramSecret:  cfg.Telegram.SecretToken,
		},
		ReadyCheck:      storageReady,
		ConversationUC:  conversationUC,
		Inbox:           inbox,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 12. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
	}

	// Updates still being processed may dispatch entries, so they finish
	// before the dispatcher is drained.
	if telegramHandler != nil {
		logger.Info(ctx, "Waiting for in-flight Telegram updates...")
		telegramHandler.Wait()
	}

	logger.Info(ctx, "Waiting for in-flight deliveries...")
	dispatcher.Wait()
	logger.Info(ctx, "Server stopped gracefully")
}

// openRepository builds the configured session backend behind the LRU cache.
// The returned check reports whether the backing store is reachable.
func openRepository(cfg config.SessionConfig) (repository.SessionRepository, func(context.Context) error, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.SessionBackendMemory:
		return memoryRepo.New(cfg.CacheSize, cfg.CacheTTL, nil), nil, noop, nil
	case config.SessionBackendSQLite:
		db, err := sqliteRepo.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return cached(cfg, db), db.Ping, func() { _ = db.Close() }, nil
	default:
		files, err := fileRepo.New(cfg.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		dir := cfg.Dir
		ready := func(context.Context) error {
			_, err := os.Stat(dir)
			return err
		}
		return cached(cfg, files), ready, noop, nil
	}
}

func cached(cfg config.SessionConfig, next repository.SessionRepository) repository.SessionRepository {
	if cfg.CacheSize <= 0 {
		return next
	}
	return memoryRepo.New(cfg.CacheSize, cfg.CacheTTL, next)
}

// openAIKey finds a key usable for voice transcription.
func openAIKey(cfg config.LLMConfig) string {
	for _, p := range cfg.Providers {
		if p.Name == "openai" && p.APIKey != "" {
			return p.APIKey
		}
	}
	return os.Getenv("OPENAI_API_KEY")
}

// registerWebhook points Telegram at this service. Without a configured URL
// it tries the local ngrok API.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPI != "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.NgrokAPI)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = ngrokURL + tgDelivery.WebhookPath
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}

	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook URL not set, skipping registration")
		return
	}
	if err := bot.SetWebhook(ctx, webhookURL, cfg.SecretToken); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}
