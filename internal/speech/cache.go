package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "medivoice:tts:"

// CachedTTS кэширует готовое аудио в Redis: одни и те же ответы
// ("Medicine not found.", карточки популярных лекарств) звучат постоянно.
// Ошибки Redis не ломают синтез, только логируются.
type CachedTTS struct {
	next TTSClient
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.ZapLogger
}

var _ TTSClient = (*CachedTTS)(nil)

func NewCachedTTS(next TTSClient, rdb *redis.Client, ttl time.Duration, log *logger.ZapLogger) *CachedTTS {
	return &CachedTTS{next: next, rdb: rdb, ttl: ttl, log: log}
}

// NewRedisClient проверяет соединение сразу, как и остальные инфраструктурные клиенты.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *CachedTTS) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	key := CacheKey(req)

	audio, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil && len(audio) > 0:
		return audio, nil
	case err != nil && !errors.Is(err, redis.Nil):
		c.log.Log(logger.LogEntry{Level: "warn", Message: "tts cache get failed", Service: "speech", Error: err})
	}

	audio, err = c.next.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.rdb.Set(ctx, key, audio, c.ttl).Err(); err != nil {
		c.log.Log(logger.LogEntry{Level: "warn", Message: "tts cache set failed", Service: "speech", Error: err})
	}
	return audio, nil
}

func CacheKey(req SynthesisRequest) string {
	sum := sha256.Sum256([]byte(req.VoiceID + "|" + req.Locale + "|" + req.Text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
