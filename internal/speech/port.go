package speech

import (
	"context"
	"errors"
)

var (
	ErrTranscription = errors.New("transcription failed")
	ErrSynthesis     = errors.New("synthesis failed")
	ErrInvalidInput  = errors.New("invalid input")
)

type TranscriptionResult struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type SynthesisRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId,omitempty"`
	Locale  string `json:"locale,omitempty"`
}

// STTClient: голос → текст
type STTClient interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (TranscriptionResult, error)
}

// TTSClient: текст → голос (байты аудио)
type TTSClient interface {
	Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error)
}
