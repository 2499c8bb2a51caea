package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const defaultMurfURL = "https://api.murf.ai/v1/speech/stream"

type MurfConfig struct {
	APIKey  string
	BaseURL string // для тестов
	VoiceID string
	Locale  string
	Timeout time.Duration
}

// MurfClient ходит в потоковый эндпоинт Murf Falcon, ответ сразу аудио.
type MurfClient struct {
	apiKey   string
	endpoint string
	voiceID  string
	locale   string
	client   *http.Client
}

var _ TTSClient = (*MurfClient)(nil)

type murfRequest struct {
	Text              string `json:"text"`
	VoiceID           string `json:"voiceId"`
	Model             string `json:"model"`
	MultiNativeLocale string `json:"multiNativeLocale,omitempty"`
}

func NewMurfClient(cfg MurfConfig) (*MurfClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("murf api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultMurfURL
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = "Matthew"
	}
	if cfg.Locale == "" {
		cfg.Locale = "en-US"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &MurfClient{
		apiKey:   cfg.APIKey,
		endpoint: cfg.BaseURL,
		voiceID:  cfg.VoiceID,
		locale:   cfg.Locale,
		client:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// TEXT → SPEECH
func (c *MurfClient) Synthesize(ctx context.Context, in SynthesisRequest) ([]byte, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}

	payload := murfRequest{
		Text:              in.Text,
		VoiceID:           firstNonEmpty(in.VoiceID, c.voiceID),
		Model:             "FALCON",
		MultiNativeLocale: firstNonEmpty(in.Locale, c.locale),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode murf request: %v", ErrSynthesis, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: murf request: %v", ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: murf status=%d body=%s",
			ErrSynthesis, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read murf stream: %v", ErrSynthesis, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: murf returned empty audio", ErrSynthesis)
	}
	return audio, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
