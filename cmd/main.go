package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/medivoice/internal/ai"
	"github.com/Vovarama1992/medivoice/internal/assistant"
	"github.com/Vovarama1992/medivoice/internal/catalog"
	"github.com/Vovarama1992/medivoice/internal/config"
	"github.com/Vovarama1992/medivoice/internal/delivery"
	"github.com/Vovarama1992/medivoice/internal/infra"
	"github.com/Vovarama1992/medivoice/internal/notificator"
	"github.com/Vovarama1992/medivoice/internal/ports"
	"github.com/Vovarama1992/medivoice/internal/reminder"
	"github.com/Vovarama1992/medivoice/internal/speech"
	"github.com/Vovarama1992/medivoice/internal/telegram"
	"github.com/Vovarama1992/medivoice/internal/textrules"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// CATALOG (обязателен: без справочника сервис не стартует)
	// =========================================================================

	medicines, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("failed to load catalog %s: %v", cfg.CatalogFile, err)
	}
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "catalog loaded from " + cfg.CatalogFile,
		Service: "medivoice",
	})

	// =========================================================================
	// DB (опционально: без DATABASE_URL всё хранится в памяти)
	// =========================================================================

	var (
		reminderRepo reminder.Repo  = reminder.NewMemoryRepo()
		rulesRepo    textrules.Repo = textrules.NewMemoryRepo(textrules.DefaultWordRules)
	)

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			log.Fatalf("db ping failed: %v", err)
		}
		if err := reminder.EnsureSchema(pingCtx, db); err != nil {
			log.Fatalf("reminders schema: %v", err)
		}
		if err := textrules.EnsureSchema(pingCtx, db); err != nil {
			log.Fatalf("text rules schema: %v", err)
		}
		cancel()

		reminderRepo = reminder.NewPostgresRepo(db)
		rulesRepo = textrules.NewRepo(db)
	}

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var tgBot *tgbotapi.BotAPI
	if cfg.TelegramToken != "" {
		tgBot, err = telegram.NewBot(cfg.TelegramToken)
		if err != nil {
			log.Fatalf("failed to init telegram: %v", err)
		}
	}

	var notifyInfra notificator.Notificator = notificator.NewLogInfra(zl)
	if cfg.TelegramEnabled() {
		notifyInfra = notificator.NewTelegramInfra(tgBot, cfg.TelegramChatID, zl)
	}

	// =========================================================================
	// CLIENTS (STT / TTS / LLM)
	// =========================================================================

	var stt speech.STTClient
	switch cfg.STTProvider {
	case "whisper":
		stt, err = speech.NewWhisperClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.DeepgramLanguage)
	default:
		stt, err = speech.NewDeepgramClient(speech.DeepgramConfig{
			APIKey:   cfg.DeepgramAPIKey,
			Model:    cfg.DeepgramModel,
			Language: cfg.DeepgramLanguage,
			Timeout:  cfg.VendorTimeout,
		})
	}
	if err != nil {
		log.Fatalf("failed to init stt: %v", err)
	}

	var (
		tts          speech.TTSClient
		defaultVoice string
	)
	switch cfg.TTSProvider {
	case "elevenlabs":
		tts, err = speech.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoice, cfg.VendorTimeout)
		defaultVoice = cfg.ElevenLabsVoice
	default:
		tts, err = speech.NewMurfClient(speech.MurfConfig{
			APIKey:  cfg.MurfAPIKey,
			VoiceID: cfg.MurfVoiceID,
			Locale:  cfg.MurfLocale,
			Timeout: cfg.VendorTimeout,
		})
		defaultVoice = cfg.MurfVoiceID
	}
	if err != nil {
		log.Fatalf("failed to init tts: %v", err)
	}

	if cfg.RedisAddr != "" {
		rdb, err := speech.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		tts = speech.NewCachedTTS(tts, rdb, cfg.TTSCacheTTL, zl)
	}

	var chatClient ai.ChatClient
	if cfg.OpenAIAPIKey != "" {
		oc, err := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("failed to init openai: %v", err)
		}
		chatClient = oc
	}

	var s3Client ports.S3Client
	if cfg.S3Enabled() {
		s3Client, err = infra.NewS3Client(ctx, infra.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
		})
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	speechService := speech.NewService(stt, tts, defaultVoice, cfg.MurfLocale)
	notifyService := notificator.NewService(notifyInfra, speechService, s3Client, zl)
	aiService := ai.NewAiService(chatClient, notifyService, cfg.VendorTimeout, zl)
	rulesService := textrules.NewService(rulesRepo)
	reminderService := reminder.NewService(reminderRepo, notifyService, zl)

	assistantService := assistant.NewService(
		medicines,
		speechService,
		rulesService,
		reminderService,
		aiService,
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := delivery.NewRouter(delivery.Handlers{
		Assistant: delivery.NewAssistantHandler(assistantService, speechService, notifyService, zl),
		Catalog:   delivery.NewCatalogHandler(medicines),
		Reminders: delivery.NewReminderHandler(reminderService),
		TextRules: delivery.NewTextRuleHandler(rulesRepo),
	}, cfg.RateLimitPerMinute)

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go reminder.RunPoller(ctx, reminderService, cfg.ReminderPollInterval, zl)

	if tgBot != nil {
		botApp := telegram.NewBotApp(tgBot, assistantService, medicines, zl)
		go botApp.Run(ctx, tgBot)
	}

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "medivoice",
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
