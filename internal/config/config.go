package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	CatalogFile string
	DatabaseURL string

	STTProvider      string // deepgram | whisper
	DeepgramAPIKey   string
	DeepgramLanguage string
	DeepgramModel    string

	TTSProvider      string // murf | elevenlabs
	MurfAPIKey       string
	MurfVoiceID      string
	MurfLocale       string
	ElevenLabsAPIKey string
	ElevenLabsVoice  string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	RedisAddr     string
	RedisPassword string
	TTSCacheTTL   time.Duration

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string

	TelegramToken  string
	TelegramChatID int64

	ReminderPollInterval time.Duration
	RateLimitPerMinute   int
	VendorTimeout        time.Duration
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        envOr("PORT", "8080"),
		CatalogFile: envOr("CATALOG_FILE", "data/medicines.json"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		STTProvider:      strings.ToLower(envOr("STT_PROVIDER", "deepgram")),
		DeepgramAPIKey:   os.Getenv("DEEPGRAM_API_KEY"),
		DeepgramLanguage: envOr("DEEPGRAM_LANGUAGE", "en-US"),
		DeepgramModel:    envOr("DEEPGRAM_MODEL", "nova-2"),

		TTSProvider:      strings.ToLower(envOr("TTS_PROVIDER", "murf")),
		MurfAPIKey:       os.Getenv("MURF_API_KEY"),
		MurfVoiceID:      envOr("MURF_VOICE_ID", "Matthew"),
		MurfLocale:       envOr("MURF_LOCALE", "en-US"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsVoice:  envOr("ELEVENLABS_VOICE_ID", "EXAVITQu4vr4xnSDxMaL"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    os.Getenv("S3_REGION"),

		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	var err error
	if cfg.TTSCacheTTL, err = envDuration("TTS_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReminderPollInterval, err = envDuration("REMINDER_POLL_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.VendorTimeout, err = envDuration("VENDOR_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = envInt("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return nil, err
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.STTProvider {
	case "deepgram":
		if c.DeepgramAPIKey == "" {
			return fmt.Errorf("DEEPGRAM_API_KEY not set")
		}
	case "whisper":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY not set (required by STT_PROVIDER=whisper)")
		}
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STTProvider)
	}

	switch c.TTSProvider {
	case "murf":
		if c.MurfAPIKey == "" {
			return fmt.Errorf("MURF_API_KEY not set")
		}
	case "elevenlabs":
		if c.ElevenLabsAPIKey == "" {
			return fmt.Errorf("ELEVENLABS_API_KEY not set")
		}
	default:
		return fmt.Errorf("unknown TTS_PROVIDER %q", c.TTSProvider)
	}

	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// S3Enabled: архив аудио напоминаний включается только при полном наборе S3_*.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != "" && c.S3Bucket != ""
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
