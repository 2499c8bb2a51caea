package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const defaultDeepgramURL = "https://api.deepgram.com/v1/listen"

type DeepgramConfig struct {
	APIKey   string
	BaseURL  string // для тестов
	Model    string
	Language string
	Timeout  time.Duration
}

type DeepgramClient struct {
	apiKey   string
	endpoint string
	model    string
	language string
	client   *http.Client
}

var _ STTClient = (*DeepgramClient)(nil)

func NewDeepgramClient(cfg DeepgramConfig) (*DeepgramClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepgram api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultDeepgramURL
	}
	if cfg.Model == "" {
		cfg.Model = "nova-2"
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &DeepgramClient{
		apiKey:   cfg.APIKey,
		endpoint: cfg.BaseURL,
		model:    cfg.Model,
		language: cfg.Language,
		client:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, contentType string) (TranscriptionResult, error) {
	if len(audio) == 0 {
		return TranscriptionResult{}, fmt.Errorf("%w: empty audio", ErrInvalidInput)
	}
	if contentType == "" {
		contentType = "audio/wav"
	}

	q := url.Values{}
	q.Set("model", c.model)
	q.Set("language", c.language)
	q.Set("smart_format", "true")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint+"?"+q.Encode(),
		bytes.NewReader(audio),
	)
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("%w: deepgram request: %v", ErrTranscription, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return TranscriptionResult{}, fmt.Errorf("%w: deepgram status=%d body=%s",
			ErrTranscription, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string   `json:"transcript"`
					Confidence *float64 `json:"confidence"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return TranscriptionResult{}, fmt.Errorf("%w: decode deepgram: %v", ErrTranscription, err)
	}

	if len(parsed.Results.Channels) == 0 ||
		len(parsed.Results.Channels[0].Alternatives) == 0 {
		return TranscriptionResult{}, fmt.Errorf("%w: empty transcript", ErrTranscription)
	}

	alt := parsed.Results.Channels[0].Alternatives[0]
	text := strings.TrimSpace(alt.Transcript)
	if text == "" {
		return TranscriptionResult{}, fmt.Errorf("%w: empty transcript", ErrTranscription)
	}

	return TranscriptionResult{Text: text, Confidence: alt.Confidence}, nil
}
