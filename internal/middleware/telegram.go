package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"timesheet-assistant/pkg/response"
)

// HeaderTelegramSecret is set by Telegram on every webhook call when the
// webhook was registered with a secret token.
const HeaderTelegramSecret = "X-Telegram-Bot-Api-Secret-Token"

// TelegramSecret rejects webhook calls that do not carry the configured secret.
func (mw Middleware) TelegramSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mw.telegramSecret == "" {
			c.Next()
			return
		}

		got := c.GetHeader(HeaderTelegramSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(mw.telegramSecret)) != 1 {
			mw.l.Warnf(c.Request.Context(), "middleware.TelegramSecret: invalid secret from %s", extractIP(c.Request))
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
