package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
	tg "github.com/Saon110/Weather-Agentic-Ai/internal/telegram"
)

func (h *Handler) handleChats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendChatsPage(ctx, b, update.Message.Chat.ID, ownerID(update), 0, false, 0)
}

func (h *Handler) sendChatsPage(ctx context.Context, b *bot.Bot, tgChatID, owner int64, page int, edit bool, messageID int) {
	chats, err := h.chatService.List(ctx, owner)
	if err != nil {
		slog.Error("list chats", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "⚠️ Error loading chats: " + err.Error(),
		})
		return
	}

	totalPages := (len(chats) + config.ChatsPerPage - 1) / config.ChatsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * config.ChatsPerPage
	end := start + config.ChatsPerPage
	if end > len(chats) {
		end = len(chats)
	}

	active, _ := h.state.activeChat(tgChatID)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗂 *Chats* (%d)\n\nSelect a conversation to continue it, or start a new one.", len(chats)))

	var rows [][]models.InlineKeyboardButton
	for _, c := range chats[start:end] {
		label := "📝 " + c.CreatedAt.Format("2006-01-02 15:04")
		if c.ID == active {
			label += " ✅"
		}
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(label, "open_chat_"+c.ID),
			tg.InlineButton("🗑", "delete_chat_"+c.ID),
		))
	}

	rows = append(rows, tg.ButtonRow(tg.InlineButton("➕ New Chat", "new_chat")))

	if totalPages > 1 {
		rows = append(rows, tg.PaginationRow(page, totalPages, "chats_page"))
	}

	keyboard := tg.InlineKeyboard(rows...)

	if edit {
		_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      tgChatID,
			MessageID:   messageID,
			Text:        sb.String(),
			ParseMode:   models.ParseModeMarkdownV1,
			ReplyMarkup: keyboard,
		})
	} else {
		_, err = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      tgChatID,
			Text:        sb.String(),
			ParseMode:   models.ParseModeMarkdownV1,
			ReplyMarkup: keyboard,
		})
	}
	if err != nil {
		slog.Error("send chats page", "error", err)
	}
}

func (h *Handler) handleOpenChat(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	tgChatID := cb.Message.Message.Chat.ID
	chatID := strings.TrimPrefix(cb.Data, "open_chat_")

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cb.ID})

	if _, err := h.chatService.Get(ctx, chatID); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "⚠️ That chat no longer exists.",
		})
		return
	}

	h.state.setActive(tgChatID, chatID)
	h.renderHistory(ctx, b, tgChatID, chatID)
}

// renderHistory replays the stored conversation into the Telegram chat.
func (h *Handler) renderHistory(ctx context.Context, b *bot.Bot, tgChatID int64, chatID string) {
	msgs, err := h.chatService.RecentMessages(ctx, chatID)
	if err != nil {
		slog.Error("load messages", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "⚠️ Error loading messages: " + err.Error(),
		})
		return
	}

	if len(msgs) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "💬 This chat is empty. Ask a weather question to begin.",
		})
		return
	}

	var sb strings.Builder
	for _, m := range msgs {
		if m.Role == domain.RoleUser {
			sb.WriteString("👤 ")
		} else {
			sb.WriteString("🤖 ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}

	if err := tg.SendLongMessage(ctx, b, tgChatID, sb.String(), nil); err != nil {
		slog.Error("render history", "error", err, "chat_id", chatID)
	}
}

func (h *Handler) handleDeleteChat(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	tgChatID := cb.Message.Message.Chat.ID
	chatID := strings.TrimPrefix(cb.Data, "delete_chat_")

	if err := h.chatService.Delete(ctx, chatID); err != nil {
		slog.Error("delete chat", "error", err, "chat_id", chatID)
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Error deleting chat: " + err.Error(),
			ShowAlert:       true,
		})
		return
	}

	h.state.clearActiveIf(tgChatID, chatID)

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            "Chat deleted",
	})
	h.sendChatsPage(ctx, b, tgChatID, cb.From.ID, 0, true, cb.Message.Message.ID)
}

func (h *Handler) handleNewChat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	tgChatID := update.Message.Chat.ID

	chat, err := h.chatService.Create(ctx, ownerID(update))
	if err != nil {
		slog.Error("create chat", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "⚠️ Error creating new chat: " + err.Error(),
		})
		return
	}

	h.state.setActive(tgChatID, chat.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: tgChatID,
		Text:   "✨ New chat started. Ask me about the weather!",
	})
}

func (h *Handler) handleNewChatCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	tgChatID := cb.Message.Message.Chat.ID

	chat, err := h.chatService.Create(ctx, cb.From.ID)
	if err != nil {
		slog.Error("create chat", "error", err)
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Error creating new chat: " + err.Error(),
			ShowAlert:       true,
		})
		return
	}

	h.state.setActive(tgChatID, chat.ID)
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            "New chat started",
	})
	h.sendChatsPage(ctx, b, tgChatID, cb.From.ID, 0, true, cb.Message.Message.ID)
}

func (h *Handler) handleChatsPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}

	page, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "chats_page_"))
	if err != nil {
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cb.ID})
	h.sendChatsPage(ctx, b, cb.Message.Message.Chat.ID, cb.From.ID, page, true, cb.Message.Message.ID)
}

func ownerID(update *models.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	return 0
}
