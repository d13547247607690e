package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHistoryHandler returns a handler for the operator-only /history command,
// which lists the most recent announcements from the audit store.
func NewHistoryHandler(deps HandlerDeps) bot.HandlerFunc {
	return historyHandler{deps}.Handle
}

type historyHandler struct {
	deps HandlerDeps
}

func (h historyHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "history")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "History handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	announcements, err := deps.Store.RecentAnnouncements(ctx, deps.Config.Bot.HistoryLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load announcement history", "error", err)
		if _, sendErr := deps.Messenger.SendMessage(ctx, chatID, deps.Config.Messages.GeneralError); sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error notice", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	if len(announcements) == 0 {
		if _, err := deps.Messenger.SendMessage(ctx, chatID, "No announcements yet."); err != nil {
			log.ErrorContext(ctx, "Failed to send empty history notice", "error", err, "chat_id", chatID)
		}
		return
	}

	var b strings.Builder
	b.WriteString("Recent announcements:\n")
	for _, a := range announcements {
		fmt.Fprintf(&b, "\n[%s] (%s) %s", a.PostedAt.Format("Jan 02 15:04"), a.Source, a.Body)
	}

	if _, err := deps.Messenger.SendMessage(ctx, chatID, b.String()); err != nil {
		log.ErrorContext(ctx, "Failed to send history listing", "error", err, "chat_id", chatID)
	}
}
