package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"github.com/tranqh/finbot/internal/domain"
	"github.com/tranqh/finbot/internal/service"
	"github.com/tranqh/finbot/internal/util"
)

const helpText = `👋 Available commands:
/help - Show this message
/balance - Show your current balance
/income <amount> [tag1,tag2,...] - Record income
/expense <amount> [tag1,tag2,...] - Record an expense
/tags - List all tags
/addtag <name> - Create a new tag
/stats [YYYY-MM] - Monthly totals
/stats <start> <end> - Totals for a date range
/stats_tag [YYYY-MM] - Per-tag totals`

const (
	replyNoHandle     = "⚠️ Please set a Telegram username first."
	replySlowDown     = "⚠️ Too many commands, please slow down."
	replyUnavailable  = "❌ Something went wrong, please try again."
	replyBadAmount    = "Invalid amount. It must be a positive number."
	replyBadRange     = "Invalid period. Use YYYY-MM or YYYY-MM-DD YYYY-MM-DD with start before end."
	replyDuplicateTag = "❌ Tag already exists."
	usageRecord       = "Usage: /%s <amount> [tag1,tag2,...]"
	usageAddTag       = "Usage: /addtag <name>"
)

// Sender is the outbound half of the Telegram API, satisfied by
// *tgbotapi.BotAPI
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler dispatches inbound chat commands to the core services and sends
// the formatted reply back through the channel. Every failure is translated
// to a user-facing text; nothing propagates past the dispatch boundary.
type Handler struct {
	sender   Sender
	identity *service.IdentityService
	tags     *service.TagService
	ledger   *service.LedgerService
	stats    *service.StatsService
	limiter  *ChatLimiter
	now      func() time.Time
}

// NewHandler creates a new Handler
func NewHandler(sender Sender, identity *service.IdentityService, tags *service.TagService, ledger *service.LedgerService, stats *service.StatsService, limiter *ChatLimiter) *Handler {
	return &Handler{
		sender:   sender,
		identity: identity,
		tags:     tags,
		ledger:   ledger,
		stats:    stats,
		limiter:  limiter,
		now:      time.Now,
	}
}

// HandleUpdate processes a single Telegram update. Non-command messages are
// ignored.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	if h.limiter != nil && !h.limiter.Allow(msg.Chat.ID) {
		h.reply(msg.Chat.ID, replySlowDown)
		return
	}

	var handle string
	if msg.From != nil {
		handle = msg.From.UserName
	}
	args := strings.Fields(msg.CommandArguments())

	var text string
	switch cmd := msg.Command(); cmd {
	case "start", "help":
		text = helpText
	case "balance":
		text = h.balance(ctx, handle)
	case "income", "thu":
		text = h.record(ctx, handle, domain.TransactionTypeIncome, cmd, args)
	case "expense", "chi":
		text = h.record(ctx, handle, domain.TransactionTypeExpense, cmd, args)
	case "tags":
		text = h.listTags(ctx)
	case "addtag":
		text = h.addTag(ctx, strings.TrimSpace(msg.CommandArguments()))
	case "stats", "thongke":
		text = h.statsTotals(ctx, handle, args)
	case "stats_tag":
		text = h.statsByTag(ctx, handle, args)
	default:
		text = helpText
	}

	h.reply(msg.Chat.ID, text)
}

func (h *Handler) balance(ctx context.Context, handle string) string {
	user, err := h.identity.Resolve(ctx, handle)
	if err != nil {
		return h.errorReply(err, "")
	}
	return "💰 Current balance: " + formatAmount(user.Balance)
}

func (h *Handler) record(ctx context.Context, handle string, transactionType domain.TransactionType, cmd string, args []string) string {
	if len(args) < 1 {
		return fmt.Sprintf(usageRecord, cmd)
	}

	user, err := h.identity.Resolve(ctx, handle)
	if err != nil {
		return h.errorReply(err, "")
	}

	var tagNames []string
	if len(args) > 1 {
		for _, name := range strings.Split(args[1], ",") {
			tagNames = append(tagNames, strings.TrimSpace(name))
		}
	}

	transaction, err := h.ledger.Record(ctx, user, transactionType, args[0], tagNames)
	if err != nil {
		return h.errorReply(err, fmt.Sprintf(usageRecord, cmd))
	}

	var b strings.Builder
	if transactionType == domain.TransactionTypeIncome {
		b.WriteString("✅ Recorded income: ")
	} else {
		b.WriteString("❌ Recorded expense: ")
	}
	b.WriteString(formatAmount(transaction.Amount))
	if len(transaction.Tags) > 0 {
		names := make([]string, len(transaction.Tags))
		for i, tag := range transaction.Tags {
			names[i] = tag.Name
		}
		b.WriteString("\nTags: ")
		b.WriteString(strings.Join(names, ", "))
	}
	return b.String()
}

func (h *Handler) listTags(ctx context.Context) string {
	tags, err := h.tags.List(ctx)
	if err != nil {
		return h.errorReply(err, "")
	}
	if len(tags) == 0 {
		return "No tags yet. Use /addtag to create one."
	}

	var b strings.Builder
	b.WriteString("Tags:")
	for _, tag := range tags {
		b.WriteString("\n- ")
		b.WriteString(tag.Name)
	}
	return b.String()
}

func (h *Handler) addTag(ctx context.Context, name string) string {
	if name == "" {
		return usageAddTag
	}
	tag, err := h.tags.Create(ctx, name)
	if err != nil {
		return h.errorReply(err, usageAddTag)
	}
	return fmt.Sprintf("✅ Created tag %q", tag.Name)
}

func (h *Handler) statsTotals(ctx context.Context, handle string, args []string) string {
	user, err := h.identity.Resolve(ctx, handle)
	if err != nil {
		return h.errorReply(err, "")
	}
	window, err := util.ParseWindow(args, h.now())
	if err != nil {
		return h.errorReply(err, replyBadRange)
	}

	result, err := h.stats.Aggregate(ctx, user.ID, window)
	if err != nil {
		return h.errorReply(err, replyBadRange)
	}

	return fmt.Sprintf("📊 Stats from %s to %s:\n- Income: %s\n- Expense: %s\n- Net: %s",
		formatDate(window.Start), formatDate(window.End),
		formatAmount(result.TotalIncome), formatAmount(result.TotalExpense), formatAmount(result.Net()))
}

func (h *Handler) statsByTag(ctx context.Context, handle string, args []string) string {
	user, err := h.identity.Resolve(ctx, handle)
	if err != nil {
		return h.errorReply(err, "")
	}
	window, err := util.ParseWindow(args, h.now())
	if err != nil {
		return h.errorReply(err, replyBadRange)
	}

	result, err := h.stats.AggregateByTag(ctx, user.ID, window)
	if err != nil {
		return h.errorReply(err, replyBadRange)
	}
	if len(result.Buckets) == 0 {
		return "No tagged transactions in this period."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 Stats by tag from %s to %s:",
		formatDate(window.Start), formatDate(window.End)))
	for _, bucket := range result.Buckets {
		b.WriteString(fmt.Sprintf("\n\n#%s:\n- Income: %s\n- Expense: %s\n- Net: %s",
			bucket.Tag,
			formatAmount(bucket.Totals.Income),
			formatAmount(bucket.Totals.Expense),
			formatAmount(bucket.Totals.Net())))
	}
	return b.String()
}

// errorReply translates a core error into the user-facing reply text. usage
// is the command-specific hint shown for validation failures where one exists.
func (h *Handler) errorReply(err error, usage string) string {
	switch {
	case errors.Is(err, domain.ErrInvalidIdentity):
		return replyNoHandle
	case errors.Is(err, domain.ErrInvalidAmount):
		return replyBadAmount
	case errors.Is(err, domain.ErrInvalidRange):
		return replyBadRange
	case errors.Is(err, domain.ErrDuplicateTag):
		return replyDuplicateTag
	case errors.Is(err, domain.ErrTagNameRequired), errors.Is(err, domain.ErrTagNameTooLong):
		if usage != "" {
			return usage
		}
		return replyUnavailable
	default:
		// Anything else is a store failure; the user just retries.
		log.Error().Err(err).Msg("Command failed")
		return replyUnavailable
	}
}

func (h *Handler) reply(chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := h.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
	}
}
