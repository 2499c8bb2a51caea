package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("MURF_API_KEY", "murf-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "deepgram", cfg.STTProvider)
	assert.Equal(t, "murf", cfg.TTSProvider)
	assert.Equal(t, "Matthew", cfg.MurfVoiceID)
	assert.Equal(t, 30*time.Second, cfg.ReminderPollInterval)
	assert.Equal(t, 15*time.Second, cfg.VendorTimeout)
	assert.False(t, cfg.S3Enabled())
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_MissingVendorKey(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("MURF_API_KEY", "murf-key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEEPGRAM_API_KEY")
}

func TestLoad_WhisperNeedsOpenAIKey(t *testing.T) {
	t.Setenv("STT_PROVIDER", "whisper")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MURF_API_KEY", "murf-key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("MURF_API_KEY", "murf-key")

	t.Run("poll interval", func(t *testing.T) {
		t.Setenv("REMINDER_POLL_INTERVAL", "soon")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("chat id", func(t *testing.T) {
		t.Setenv("TELEGRAM_CHAT_ID", "abc")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoad_OptionalIntegrations(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("MURF_API_KEY", "murf-key")
	t.Setenv("S3_ENDPOINT", "s3.local")
	t.Setenv("S3_ACCESS_KEY", "a")
	t.Setenv("S3_SECRET_KEY", "b")
	t.Setenv("S3_BUCKET", "reminders")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.S3Enabled())
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}
