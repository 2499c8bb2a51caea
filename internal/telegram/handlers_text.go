package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handleText(ctx context.Context, chatID int64, text string) {
	app.typing(chatID, tgbotapi.ChatTyping)

	ans, err := app.Assistant.Answer(ctx, text)
	if err != nil {
		app.logf("error", "[text] answer fail chat=%d err=%v", chatID, err)
		app.send(tgbotapi.NewMessage(chatID, "⚠️ Something went wrong, please try again."))
		return
	}

	app.send(tgbotapi.NewMessage(chatID, ans.Reply))
}
