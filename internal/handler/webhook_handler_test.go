package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/tranqh/finbot/internal/bot"
	"github.com/tranqh/finbot/internal/service"
	"github.com/tranqh/finbot/internal/testutil"
)

type recordingSender struct {
	sent []tgbotapi.MessageConfig
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		r.sent = append(r.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func newTestWebhook() (*WebhookHandler, *recordingSender) {
	userRepo := testutil.NewMockUserRepository()
	tagRepo := testutil.NewMockTagRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionRepo.Users = userRepo

	tagService := service.NewTagService(tagRepo)
	sender := &recordingSender{}
	botHandler := bot.NewHandler(
		sender,
		service.NewIdentityService(userRepo),
		tagService,
		service.NewLedgerService(transactionRepo, userRepo, tagService),
		service.NewStatsService(transactionRepo),
		nil,
	)
	return NewWebhookHandler(botHandler), sender
}

func TestWebhook_DispatchesUpdate(t *testing.T) {
	webhook, sender := newTestWebhook()

	body := `{
		"update_id": 1,
		"message": {
			"message_id": 10,
			"text": "/balance",
			"chat": {"id": 42},
			"from": {"id": 7, "username": "alice"},
			"entities": [{"type": "bot_command", "offset": 0, "length": 8}]
		}
	}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/botTOKEN", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := webhook.Handle(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].ChatID)
	assert.Contains(t, sender.sent[0].Text, "balance")
}

func TestWebhook_MalformedPayload(t *testing.T) {
	webhook, sender := newTestWebhook()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/botTOKEN", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := webhook.Handle(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sender.sent)
}
