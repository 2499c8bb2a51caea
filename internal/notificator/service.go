package notificator

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/medivoice/internal/infra"
	"github.com/Vovarama1992/medivoice/internal/ports"
	"github.com/Vovarama1992/medivoice/internal/reminder"
	"github.com/Vovarama1992/medivoice/internal/speech"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, req speech.SynthesisRequest) ([]byte, error)
}

type Service struct {
	infra Notificator
	tts   Synthesizer
	s3    ports.S3Client // может быть nil
	log   *logger.ZapLogger
}

var _ reminder.Deliverer = (*Service)(nil)

func NewService(infra Notificator, tts Synthesizer, s3 ports.S3Client, log *logger.ZapLogger) *Service {
	return &Service{infra: infra, tts: tts, s3: s3, log: log}
}

func (s *Service) Notify(ctx context.Context, err error, details string) error {
	return s.infra.Notify(ctx, err, details)
}

func ReminderText(message string) string {
	return "Reminder: " + message
}

// Deliver озвучивает напоминание, кладёт аудио в архив (если настроен)
// и отправляет. Без аудио напоминание всё равно уходит текстом.
func (s *Service) Deliver(ctx context.Context, r reminder.Reminder) (string, error) {
	text := ReminderText(r.Message)

	audio, err := s.tts.Synthesize(ctx, speech.SynthesisRequest{Text: text})
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "reminder synthesis failed, sending text", Service: "notificator", Error: err})
		audio = nil
	}

	var audioURL string
	if s.s3 != nil && len(audio) > 0 {
		key := infra.ReminderAudioKey(r.ID, r.ScheduledTime)
		audioURL, err = s.s3.PutObject(ctx, key, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg")
		if err != nil {
			s.log.Log(logger.LogEntry{Level: "warn", Message: "reminder audio upload failed", Service: "notificator", Error: err})
			audioURL = ""
		}
	}

	if err := s.infra.Remind(ctx, text, audio); err != nil {
		return audioURL, fmt.Errorf("send reminder %s: %w", r.ID, err)
	}
	return audioURL, nil
}
