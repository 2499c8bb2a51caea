package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeepgram(t *testing.T, h http.HandlerFunc) *DeepgramClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewDeepgramClient(DeepgramConfig{APIKey: "dg-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestDeepgram_Transcribe(t *testing.T) {
	c := newDeepgram(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Token dg-key", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/ogg", r.Header.Get("Content-Type"))
		assert.Equal(t, "nova-2", r.URL.Query().Get("model"))
		assert.Equal(t, "true", r.URL.Query().Get("smart_format"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte("fake-ogg"), body)

		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":" aspirin ","confidence":0.93}]}]}}`))
	})

	res, err := c.Transcribe(context.Background(), []byte("fake-ogg"), "audio/ogg")
	require.NoError(t, err)
	assert.Equal(t, "aspirin", res.Text)
	require.NotNil(t, res.Confidence)
	assert.InDelta(t, 0.93, *res.Confidence, 1e-9)
}

func TestDeepgram_Errors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"vendor 400": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"err_msg":"corrupt or unsupported data"}`, http.StatusBadRequest)
		},
		"not json": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		},
		"no channels": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"results":{"channels":[]}}`))
		},
		"empty transcript": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":""}]}]}}`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			c := newDeepgram(t, h)
			_, err := c.Transcribe(context.Background(), []byte("garbage"), "")
			assert.ErrorIs(t, err, ErrTranscription)
		})
	}
}

func TestDeepgram_EmptyAudio(t *testing.T) {
	c := newDeepgram(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("vendor must not be called")
	})
	_, err := c.Transcribe(context.Background(), nil, "audio/wav")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewDeepgramClient_RequiresKey(t *testing.T) {
	_, err := NewDeepgramClient(DeepgramConfig{})
	assert.Error(t, err)
}

func TestMurf_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "murf-key", r.Header.Get("api-key"))

		var body murfRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Aspirin - Pain relief.", body.Text)
		assert.Equal(t, "Natalie", body.VoiceID)
		assert.Equal(t, "FALCON", body.Model)
		assert.Equal(t, "en-IN", body.MultiNativeLocale)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-audio"))
	}))
	defer srv.Close()

	c, err := NewMurfClient(MurfConfig{APIKey: "murf-key", BaseURL: srv.URL, Locale: "en-IN"})
	require.NoError(t, err)

	audio, err := c.Synthesize(context.Background(), SynthesisRequest{Text: "Aspirin - Pain relief.", VoiceID: "Natalie"})
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-audio"), audio)
}

func TestMurf_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewMurfClient(MurfConfig{APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Synthesize(context.Background(), SynthesisRequest{Text: "hello"})
	assert.ErrorIs(t, err, ErrSynthesis)

	_, err = c.Synthesize(context.Background(), SynthesisRequest{Text: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestElevenLabs_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/voice-1", r.URL.Path)
		assert.Equal(t, "el-key", r.Header.Get("xi-api-key"))
		_, _ = w.Write([]byte("mp3"))
	}))
	defer srv.Close()

	c, err := NewElevenLabsClient("el-key", "voice-1", 0)
	require.NoError(t, err)
	c.baseURL = srv.URL

	audio, err := c.Synthesize(context.Background(), SynthesisRequest{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".ogg", extensionFor("audio/ogg; codecs=opus"))
	assert.Equal(t, ".mp3", extensionFor("audio/mpeg"))
	assert.Equal(t, ".wav", extensionFor(""))
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(SynthesisRequest{Text: "hello", VoiceID: "Matthew", Locale: "en-US"})
	b := CacheKey(SynthesisRequest{Text: "hello", VoiceID: "Matthew", Locale: "en-US"})
	c := CacheKey(SynthesisRequest{Text: "hello", VoiceID: "Natalie", Locale: "en-US"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, cacheKeyPrefix)
}
