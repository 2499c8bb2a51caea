package notificator

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram-реализация: один бот, один чат.
type TelegramInfra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logger.ZapLogger
}

// бот общий с голосовым фронтом (internal/telegram)
func NewTelegramInfra(bot *tgbotapi.BotAPI, chatID int64, log *logger.ZapLogger) *TelegramInfra {
	return &TelegramInfra{bot: bot, chatID: chatID, log: log}
}

func (i *TelegramInfra) Notify(ctx context.Context, err error, details string) error {
	text := fmt.Sprintf("❗ Ошибка в medivoice\n\nОшибка: %v\n\nДетали: %s", err, details)

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.chatID, text)); sendErr != nil {
		i.log.Log(logger.LogEntry{Level: "error", Message: "[notificator] send fail", Service: "notificator", Error: sendErr})
		return sendErr
	}
	return nil
}

func (i *TelegramInfra) Remind(ctx context.Context, text string, audio []byte) error {
	var msg tgbotapi.Chattable
	if len(audio) > 0 {
		voice := tgbotapi.NewVoice(i.chatID, tgbotapi.FileBytes{Name: "reminder.mp3", Bytes: audio})
		voice.Caption = text
		msg = voice
	} else {
		msg = tgbotapi.NewMessage(i.chatID, "⏰ "+text)
	}

	_, err := i.bot.Send(msg)
	return err
}

// LogInfra: без Telegram: всё уходит в лог.
type LogInfra struct {
	log *logger.ZapLogger
}

func NewLogInfra(log *logger.ZapLogger) *LogInfra {
	return &LogInfra{log: log}
}

func (i *LogInfra) Notify(ctx context.Context, err error, details string) error {
	i.log.Log(logger.LogEntry{Level: "error", Message: details, Service: "notificator", Error: err})
	return nil
}

func (i *LogInfra) Remind(ctx context.Context, text string, audio []byte) error {
	i.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[reminder] %s (audio %d bytes)", text, len(audio)),
		Service: "notificator",
	})
	return nil
}
