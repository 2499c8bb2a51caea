package assistant

import (
	"context"
	"errors"

	"github.com/Vovarama1992/medivoice/internal/catalog"
	"github.com/Vovarama1992/medivoice/internal/reminder"
	"github.com/Vovarama1992/medivoice/internal/speech"
)

var ErrEmptyQuery = errors.New("empty query")

// Фразы, которые озвучиваются при сбоях вендоров.
const (
	TranscriptionApology = "Sorry, I couldn't understand the audio. Please try again."
	SynthesisApology     = "Sorry, I can't speak right now. Here is the answer as text."
)

type Intent string

const (
	IntentWake        Intent = "wake"
	IntentMedicine    Intent = "medicine"
	IntentInteraction Intent = "interaction"
	IntentReminder    Intent = "reminder"
	IntentReminders   Intent = "reminders"
	IntentNotFound    Intent = "not_found"
	IntentChat        Intent = "chat"
	IntentError       Intent = "error"
)

type Answer struct {
	Reply    string             `json:"reply"`
	Intent   Intent             `json:"intent"`
	Field    string             `json:"field,omitempty"`
	Medicine *catalog.Medicine  `json:"medicine,omitempty"`
	Reminder *reminder.Reminder `json:"reminder,omitempty"`
}

type AskResult struct {
	Transcript string
	Confidence *float64
	Answer     Answer
	Audio      []byte // audio/mpeg
}

type Speech interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (speech.TranscriptionResult, error)
	Synthesize(ctx context.Context, req speech.SynthesisRequest) ([]byte, error)
}

type Service interface {
	// Answer: текстовый ответ на уже распознанную фразу.
	Answer(ctx context.Context, text string) (Answer, error)
	// Ask: аудио → текст → ответ → аудио. При ошибке вендора результат
	// всё равно содержит текст ответа (или извинение) для пользователя.
	Ask(ctx context.Context, audio []byte, contentType string) (AskResult, error)
	Speak(ctx context.Context, text, voiceID string) ([]byte, error)
}
