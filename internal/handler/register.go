package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/chats", bot.MatchTypePrefix, h.handleChats)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/new", bot.MatchTypePrefix, h.handleNewChat)

	// Chat list callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "open_chat_", bot.MatchTypePrefix, h.handleOpenChat)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "delete_chat_", bot.MatchTypePrefix, h.handleDeleteChat)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "new_chat", bot.MatchTypePrefix, h.handleNewChatCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "chats_page_", bot.MatchTypePrefix, h.handleChatsPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "noop", bot.MatchTypeExact, h.handleNoop)
}

// handleNoop acknowledges callbacks from non-interactive inline buttons such
// as the pagination indicator.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
