package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
	tg "github.com/Saon110/Weather-Agentic-Ai/internal/telegram"
)

// HandleVoice processes a voice note: download, transcribe, then run the same
// query chain as typed text, answering with both text and speech.
func (h *Handler) HandleVoice(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Voice == nil || update.Message.From == nil {
		return
	}

	tgChatID := update.Message.Chat.ID
	voice := update.Message.Voice

	// Mirrors the fixed-duration capture cap of a microphone recording.
	if voice.Duration > h.cfg.MaxVoiceSeconds {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   fmt.Sprintf("🎙 Voice messages are limited to %d seconds.", h.cfg.MaxVoiceSeconds),
		})
		return
	}

	audio, filePath, err := tg.DownloadFile(ctx, b, voice.FileID)
	if err != nil {
		slog.Error("download voice note", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   config.TranscriptionErrorPrefix + "Could not fetch the voice message.",
		})
		return
	}

	transcript := h.voice.Transcribe(ctx, audio, filename(filePath))

	// A marked transcript is a user-facing error: surface it and append
	// nothing to the conversation store.
	if strings.HasPrefix(transcript, config.TranscriptionErrorPrefix) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tgChatID,
			Text:   transcript,
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: tgChatID,
		Text:   "📝 " + transcript,
	})

	h.processQuery(ctx, b, tgChatID, update.Message.From.ID, transcript, true)
}

func filename(filePath string) string {
	if i := strings.LastIndex(filePath, "/"); i >= 0 {
		return filePath[i+1:]
	}
	if filePath == "" {
		return "voice.ogg"
	}
	return filePath
}
