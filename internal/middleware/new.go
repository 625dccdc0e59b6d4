package middleware

import (
	pkgLog "timesheet-assistant/pkg/log"
)

// Config configures the shared middlewares.
type Config struct {
	// RateLimitPerMin is the per-client request budget. Zero disables limiting.
	RateLimitPerMin int
	// TelegramSecret is compared against the X-Telegram-Bot-Api-Secret-Token header.
	// Empty accepts every webhook call.
	TelegramSecret string
}

type Middleware struct {
	l              pkgLog.Logger
	limiter        *rateLimiter
	telegramSecret string
}

func New(l pkgLog.Logger, cfg Config) Middleware {
	mw := Middleware{
		l:              l,
		telegramSecret: cfg.TelegramSecret,
	}
	if cfg.RateLimitPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return mw
}
