package telegram

import (
	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/middleware"
)

// WebhookPath is the route Telegram posts updates to.
const WebhookPath = "/webhook/telegram"

// RegisterRoutes mounts the webhook behind the secret-token check.
func RegisterRoutes(r gin.IRoutes, h Handler, mw middleware.Middleware) {
	r.POST(WebhookPath, mw.TelegramSecret(), h.HandleWebhook)
}
