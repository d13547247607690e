// Package handlers contains the dispatch router, command handlers, and
// middleware for inbound Telegram updates.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// OperatorOnly creates a middleware that checks if the message sender is the
// configured operator. Anyone else gets a permission-denied notice and the
// handler chain stops.
func OperatorOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, bot, update)
				return
			}

			userID := update.Message.From.ID
			if userID != deps.Config.Bot.OperatorID {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "OperatorOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

				if _, err := deps.Messenger.SendMessage(ctx, chatID, deps.Config.Messages.PermissionDenied); err != nil {
					log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, bot, update)
		}
	}
}
