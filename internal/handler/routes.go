package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the HTTP surface: a health check and the webhook
// endpoint. The bot token in the webhook path is the shared secret that keeps
// strangers from posting updates, mirroring the Bot API convention.
func RegisterRoutes(e *echo.Echo, webhook *WebhookHandler, botToken string) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/bot"+botToken, webhook.Handle)
}
