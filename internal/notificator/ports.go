package notificator

import "context"

type Notificator interface {
	// Notify: сообщение об ошибке в ops-чат
	Notify(ctx context.Context, err error, details string) error
	// Remind: сработавшее напоминание: голосом, если есть аудио, иначе текстом
	Remind(ctx context.Context, text string, audio []byte) error
}
