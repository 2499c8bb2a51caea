package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/medivoice/internal/assistant"
	"github.com/Vovarama1992/medivoice/internal/speech"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// лимит Telegram Bot API на скачивание файла
const maxVoiceBytes = 20 << 20

func (app *BotApp) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	app.handleSpeech(ctx, msg.Chat.ID, msg.Voice.FileID, firstNonEmpty(msg.Voice.MimeType, "audio/ogg"))
}

func (app *BotApp) handleAudio(ctx context.Context, msg *tgbotapi.Message) {
	app.handleSpeech(ctx, msg.Chat.ID, msg.Audio.FileID, firstNonEmpty(msg.Audio.MimeType, "audio/mpeg"))
}

func (app *BotApp) handleSpeech(ctx context.Context, chatID int64, fileID, mimeType string) {
	app.logf("info", "[voice] start chat=%d fileID=%s", chatID, fileID)

	app.typing(chatID, tgbotapi.ChatRecordVoice)

	audio, err := app.downloadFile(ctx, fileID)
	if err != nil {
		app.logf("error", "[voice] download fail chat=%d err=%v", chatID, err)
		app.send(tgbotapi.NewMessage(chatID, "⚠️ Could not download the voice message."))
		return
	}

	res, err := app.Assistant.Ask(ctx, audio, mimeType)
	switch {
	case err == nil:
		voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "reply.mp3", Bytes: res.Audio})
		voice.Caption = res.Answer.Reply
		app.send(voice)
		app.logf("info", "[voice] done chat=%d intent=%s", chatID, res.Answer.Intent)

	case errors.Is(err, speech.ErrSynthesis):
		// ответ есть, озвучить не вышло, шлём текстом
		app.send(tgbotapi.NewMessage(chatID, res.Answer.Reply))

	case errors.Is(err, speech.ErrTranscription), errors.Is(err, speech.ErrInvalidInput):
		app.send(tgbotapi.NewMessage(chatID, assistant.TranscriptionApology))

	default:
		app.logf("error", "[voice] ask fail chat=%d err=%v", chatID, err)
		app.send(tgbotapi.NewMessage(chatID, "⚠️ Something went wrong, please try again."))
	}
}

func (app *BotApp) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := app.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := app.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download status: %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxVoiceBytes))
}

func (app *BotApp) typing(chatID int64, action string) {
	_, _ = app.bot.Request(tgbotapi.NewChatAction(chatID, action))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
