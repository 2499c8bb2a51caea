package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
)

// RunPoller раз в interval проверяет просроченные напоминания. Блокируется до отмены ctx.
func RunPoller(ctx context.Context, svc Service, interval time.Duration, log *logger.ZapLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := svc.FireDue(ctx, now)
			if err != nil {
				log.Log(logger.LogEntry{Level: "error", Message: "[reminder-poll] error", Service: "reminder", Error: err})
				continue
			}
			if n > 0 {
				log.Log(logger.LogEntry{Level: "info", Message: fmt.Sprintf("[reminder-poll] fired %d reminder(s)", n), Service: "reminder"})
			}
		}
	}
}
