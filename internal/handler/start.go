package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const welcomeText = `⛅ *Weather Assistant*

Ask your weather-related questions and get accurate answers.

Try:
• _weather in Paris_
• _will it rain in Tokyo this week?_
• _how cold was London the last 3 days?_

You can also send a voice message instead of typing.

Commands:
/chats — manage saved conversations
/new — start a new conversation`

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      welcomeText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
