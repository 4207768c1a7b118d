package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
	tg "github.com/Saon110/Weather-Agentic-Ai/internal/telegram"
)

// HandleText processes a typed weather question. Registered as the default
// text handler in main.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	text := strings.TrimSpace(update.Message.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}

	h.processQuery(ctx, b, update.Message.Chat.ID, update.Message.From.ID, text, false)
}

// processQuery runs the full interaction chain: ensure a session, persist the
// user message, ask the agent, persist and render the answer. Each user
// interaction is one synchronous call chain; there is no background work.
func (h *Handler) processQuery(ctx context.Context, b *bot.Bot, tgChatID, owner int64, text string, speakReply bool) {
	chatID, ok := h.state.activeChat(tgChatID)
	if ok {
		// The selected chat may have been deleted from another page.
		if _, err := h.chatService.Get(ctx, chatID); err != nil {
			ok = false
		}
	}
	if !ok {
		chat, err := h.chatService.Create(ctx, owner)
		if err != nil {
			slog.Error("auto-create chat", "error", err)
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: tgChatID,
				Text:   "⚠️ Failed to create a new chat: " + err.Error(),
			})
			return
		}
		chatID = chat.ID
		h.state.setActive(tgChatID, chatID)
	}

	if _, err := h.chatService.AppendMessage(ctx, chatID, domain.RoleUser, text); err != nil {
		slog.Error("append user message", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "⚠️ Failed to save your message: " + err.Error(),
		})
		return
	}

	stopTyping := tg.StartTyping(ctx, b, tgChatID)
	answer, err := h.agent.Answer(ctx, text)
	stopTyping()
	if err != nil {
		slog.Error("agent answer", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "⚠️ Something went wrong processing your request: " + err.Error(),
		})
		return
	}

	if _, err := h.chatService.AppendMessage(ctx, chatID, domain.RoleAssistant, answer); err != nil {
		slog.Error("append assistant message", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "⚠️ Failed to save the answer: " + err.Error(),
		})
		return
	}

	if err := tg.SendLongMessage(ctx, b, tgChatID, answer, nil); err != nil {
		slog.Error("send answer", "error", err)
		return
	}

	if speakReply && h.cfg.VoiceEnabled() {
		h.speakAnswer(ctx, b, tgChatID, answer)
	}
}

// speakAnswer synthesizes the answer and sends it as a voice note. Synthesis
// failure is non-fatal: the text answer has already been rendered.
func (h *Handler) speakAnswer(ctx context.Context, b *bot.Bot, tgChatID int64, answer string) {
	audio, err := h.voice.Speak(ctx, answer)
	if err != nil {
		slog.Warn("speech synthesis failed", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   "🔇 Voice output unavailable.",
		})
		return
	}
	if len(audio) == 0 {
		return
	}
	if err := tg.SendVoice(ctx, b, tgChatID, audio); err != nil {
		slog.Warn("send voice reply", "error", err)
	}
}
