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

const defaultElevenLabsURL = "https://api.elevenlabs.io/v1/text-to-speech"

// ElevenLabsClient: запасной TTS (TTS_PROVIDER=elevenlabs).
type ElevenLabsClient struct {
	apiKey  string
	baseURL string
	voiceID string
	httpCli *http.Client
}

var _ TTSClient = (*ElevenLabsClient)(nil)

func NewElevenLabsClient(apiKey, voiceID string, timeout time.Duration) (*ElevenLabsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("elevenlabs api key is required")
	}
	if voiceID == "" {
		voiceID = "EXAVITQu4vr4xnSDxMaL" // Rachel (дефолт)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &ElevenLabsClient{
		apiKey:  apiKey,
		baseURL: defaultElevenLabsURL,
		voiceID: voiceID,
		httpCli: &http.Client{Timeout: timeout},
	}, nil
}

// TEXT → SPEECH
func (c *ElevenLabsClient) Synthesize(ctx context.Context, in SynthesisRequest) ([]byte, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, firstNonEmpty(in.VoiceID, c.voiceID))

	payload, err := json.Marshal(map[string]string{"text": in.Text})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: elevenlabs request: %v", ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: elevenlabs error: %s", ErrSynthesis, string(b))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	return audio, nil
}
