package speech

import (
	"context"
	"fmt"
	"strings"
)

// лимит текста для одного запроса к TTS
const MaxSynthesisRunes = 1000

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt          STTClient
	tts          TTSClient
	defaultVoice string
	locale       string
}

func NewService(stt STTClient, tts TTSClient, defaultVoice, locale string) *Service {
	return &Service{
		stt:          stt,
		tts:          tts,
		defaultVoice: defaultVoice,
		locale:       locale,
	}
}

func (s *Service) Transcribe(ctx context.Context, audio []byte, contentType string) (TranscriptionResult, error) {
	if len(audio) == 0 {
		return TranscriptionResult{}, fmt.Errorf("%w: empty audio", ErrInvalidInput)
	}
	return s.stt.Transcribe(ctx, audio, contentType)
}

// Synthesize подставляет голос/локаль по умолчанию и обрезает текст.
func (s *Service) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}
	if r := []rune(req.Text); len(r) > MaxSynthesisRunes {
		req.Text = string(r[:MaxSynthesisRunes])
	}
	if req.VoiceID == "" {
		req.VoiceID = s.defaultVoice
	}
	if req.Locale == "" {
		req.Locale = s.locale
	}
	return s.tts.Synthesize(ctx, req)
}
