package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/medivoice/internal/assistant"
	"github.com/Vovarama1992/medivoice/internal/catalog"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI: то, что нужно обработчикам от tgbotapi.BotAPI.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// BotApp: голосовой фронт ассистента в Telegram.
type BotApp struct {
	Assistant assistant.Service
	Catalog   catalog.Catalog
	Log       *logger.ZapLogger

	bot     BotAPI
	httpCli *http.Client
}

func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return bot, nil
}

func NewBotApp(bot BotAPI, asst assistant.Service, cat catalog.Catalog, log *logger.ZapLogger) *BotApp {
	return &BotApp{
		Assistant: asst,
		Catalog:   cat,
		Log:       log,
		bot:       bot,
		httpCli:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (app *BotApp) logf(level, format string, args ...any) {
	app.Log.Log(logger.LogEntry{Level: level, Message: fmt.Sprintf(format, args...), Service: "telegram"})
}

func (app *BotApp) send(c tgbotapi.Chattable) {
	if _, err := app.bot.Send(c); err != nil {
		app.Log.Log(logger.LogEntry{Level: "warn", Message: "[telegram] send fail", Service: "telegram", Error: err})
	}
}

// Run крутит long polling до отмены ctx.
func (app *BotApp) Run(ctx context.Context, bot *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := bot.GetUpdatesChan(u)
	app.logf("info", "[bot_loop] started username=@%s", bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go app.dispatchUpdate(ctx, update)
		}
	}
}
