package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperClient: альтернативный STT через OpenAI-совместимый API.
type WhisperClient struct {
	client   *openai.Client
	language string
}

var _ STTClient = (*WhisperClient)(nil)

func NewWhisperClient(apiKey, baseURL, language string) (*WhisperClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	// whisper ждёт ISO-639-1: "en-US" → "en"
	lang, _, _ := strings.Cut(language, "-")

	return &WhisperClient{
		client:   openai.NewClientWithConfig(cfg),
		language: strings.ToLower(lang),
	}, nil
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte, contentType string) (TranscriptionResult, error) {
	if len(audio) == 0 {
		return TranscriptionResult{}, fmt.Errorf("%w: empty audio", ErrInvalidInput)
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio" + extensionFor(contentType),
		Reader:   bytes.NewReader(audio),
		Language: c.language,
	})
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("%w: whisper: %v", ErrTranscription, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return TranscriptionResult{}, fmt.Errorf("%w: empty transcript", ErrTranscription)
	}
	return TranscriptionResult{Text: text}, nil
}

func extensionFor(contentType string) string {
	ct, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	switch strings.TrimSpace(ct) {
	case "audio/ogg", "audio/opus":
		return ".ogg"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/webm":
		return ".webm"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	case "audio/flac":
		return ".flac"
	default:
		return ".wav"
	}
}
