package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/medivoice/internal/assistant"
	"github.com/Vovarama1992/medivoice/internal/catalog"
	"github.com/Vovarama1992/medivoice/internal/speech"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeBot struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	fileURL string
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetFileDirectURL(fileID string) (string, error) {
	return b.fileURL + "/" + fileID, nil
}

type fakeAssistant struct {
	gotAudio []byte
	gotType  string
	askErr   error
}

func (f *fakeAssistant) Answer(_ context.Context, text string) (assistant.Answer, error) {
	return assistant.Answer{Reply: "echo: " + text, Intent: assistant.IntentChat}, nil
}

func (f *fakeAssistant) Ask(_ context.Context, audio []byte, contentType string) (assistant.AskResult, error) {
	f.gotAudio, f.gotType = audio, contentType
	res := assistant.AskResult{
		Transcript: "aspirin",
		Answer:     assistant.Answer{Reply: "Aspirin - Relieves pain.", Intent: assistant.IntentMedicine},
		Audio:      []byte("mp3"),
	}
	if f.askErr != nil {
		res.Audio = nil
		return res, f.askErr
	}
	return res, nil
}

func (f *fakeAssistant) Speak(context.Context, string, string) ([]byte, error) {
	return []byte("mp3"), nil
}

func newTestApp(t *testing.T, asst assistant.Service) (*BotApp, *fakeBot) {
	t.Helper()
	cat, err := catalog.New([]catalog.Medicine{{Name: "Aspirin"}, {Name: "Ibuprofen"}})
	require.NoError(t, err)

	bot := &fakeBot{}
	app := NewBotApp(bot, asst, cat, logger.NewZapLogger(zaptest.NewLogger(t).Sugar()))
	return app, bot
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}, Text: text}
}

func TestHandleMessage_Start(t *testing.T) {
	app, bot := newTestApp(t, &fakeAssistant{})

	msg := textMessage("/start")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}
	app.dispatchUpdate(context.Background(), tgbotapi.Update{Message: msg})

	require.Len(t, bot.sent, 1)
	m := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Contains(t, m.Text, "MediVoice")
	assert.IsType(t, tgbotapi.ReplyKeyboardMarkup{}, m.ReplyMarkup)
}

func TestHandleMessage_Buttons(t *testing.T) {
	app, bot := newTestApp(t, &fakeAssistant{})

	app.dispatchUpdate(context.Background(), tgbotapi.Update{Message: textMessage(btnMedicines)})
	require.Len(t, bot.sent, 1)
	assert.Equal(t, "I know about:\n• Aspirin\n• Ibuprofen", bot.sent[0].(tgbotapi.MessageConfig).Text)

	app.dispatchUpdate(context.Background(), tgbotapi.Update{Message: textMessage(btnReminders)})
	require.Len(t, bot.sent, 2)
	assert.Equal(t, "echo: what are my reminders", bot.sent[1].(tgbotapi.MessageConfig).Text)
}

func TestHandleMessage_FreeText(t *testing.T) {
	app, bot := newTestApp(t, &fakeAssistant{})

	app.dispatchUpdate(context.Background(), tgbotapi.Update{Message: textMessage("dosage of aspirin")})
	require.Len(t, bot.sent, 1)
	assert.Equal(t, "echo: dosage of aspirin", bot.sent[0].(tgbotapi.MessageConfig).Text)
}

func newFileServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/voice-1" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("OggS voice"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func voiceMessage(fileID string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: 42},
		Voice: &tgbotapi.Voice{FileID: fileID, Duration: 2},
	}
}

func TestHandleVoice(t *testing.T) {
	asst := &fakeAssistant{}
	app, bot := newTestApp(t, asst)
	bot.fileURL = newFileServer(t).URL

	app.dispatchUpdate(context.Background(), tgbotapi.Update{Message: voiceMessage("voice-1")})

	assert.Equal(t, []byte("OggS voice"), asst.gotAudio)
	assert.Equal(t, "audio/ogg", asst.gotType)

	require.Len(t, bot.sent, 1)
	voice := bot.sent[0].(tgbotapi.VoiceConfig)
	assert.Equal(t, "Aspirin - Relieves pain.", voice.Caption)
	assert.Equal(t, []byte("mp3"), voice.File.(tgbotapi.FileBytes).Bytes)
}

func TestHandleVoice_Failures(t *testing.T) {
	tests := []struct {
		name   string
		fileID string
		err    error
		want   string
	}{
		{"download", "missing", nil, "Could not download"},
		{"transcription", "voice-1", fmt.Errorf("%w: bad audio", speech.ErrTranscription), assistant.TranscriptionApology},
		{"synthesis", "voice-1", fmt.Errorf("%w: murf down", speech.ErrSynthesis), "Aspirin - Relieves pain."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, bot := newTestApp(t, &fakeAssistant{askErr: tt.err})
			bot.fileURL = newFileServer(t).URL

			app.dispatchUpdate(context.Background(), tgbotapi.Update{Message: voiceMessage(tt.fileID)})

			require.Len(t, bot.sent, 1)
			assert.Contains(t, bot.sent[0].(tgbotapi.MessageConfig).Text, tt.want)
		})
	}
}
