package handler

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tranqh/finbot/internal/bot"
)

// WebhookHandler receives Telegram updates pushed to the webhook endpoint
// and hands them to the bot dispatcher.
type WebhookHandler struct {
	bot *bot.Handler
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(botHandler *bot.Handler) *WebhookHandler {
	return &WebhookHandler{bot: botHandler}
}

// Handle decodes the update payload and dispatches it. Telegram only cares
// about the status code; replies travel through the Bot API, not this
// response.
func (h *WebhookHandler) Handle(c echo.Context) error {
	var update tgbotapi.Update
	if err := json.NewDecoder(c.Request().Body).Decode(&update); err != nil {
		log.Warn().Err(err).Msg("Malformed webhook payload")
		return c.NoContent(http.StatusBadRequest)
	}

	h.bot.HandleUpdate(c.Request().Context(), update)
	return c.NoContent(http.StatusOK)
}
