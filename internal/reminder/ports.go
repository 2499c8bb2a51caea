package reminder

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("reminder not found")
	ErrInvalidInput = errors.New("invalid reminder")
)

type Reminder struct {
	ID            string    `json:"id"`
	Message       string    `json:"message"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Repeat        string    `json:"repeat,omitempty"` // cron, 5 полей
	Fired         bool      `json:"fired"`
	AudioURL      string    `json:"audioUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Repo interface {
	Create(ctx context.Context, r Reminder) error
	Update(ctx context.Context, r Reminder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Reminder, error)
	// ListDue: не сработавшие напоминания с ScheduledTime <= now
	ListDue(ctx context.Context, now time.Time) ([]Reminder, error)
}

// Deliverer озвучивает/отправляет сработавшее напоминание.
type Deliverer interface {
	Deliver(ctx context.Context, r Reminder) (audioURL string, err error)
}

type Service interface {
	Create(ctx context.Context, message string, at time.Time, repeat string) (Reminder, error)
	List(ctx context.Context) ([]Reminder, error)
	Cancel(ctx context.Context, id string) error
	FireDue(ctx context.Context, now time.Time) (int, error)
}
