package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"
	cronlib "github.com/robfig/cron/v3"
)

var cronParser = cronlib.NewParser(cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow)

type service struct {
	repo      Repo
	deliverer Deliverer
	now       func() time.Time
	log       *logger.ZapLogger
}

func NewService(repo Repo, deliverer Deliverer, log *logger.ZapLogger) Service {
	return &service{
		repo:      repo,
		deliverer: deliverer,
		now:       time.Now,
		log:       log,
	}
}

// Create: at может быть нулевым только для повторяющихся напоминаний,
// тогда первое срабатывание берётся из cron-выражения.
func (s *service) Create(ctx context.Context, message string, at time.Time, repeat string) (Reminder, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reminder{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	repeat = strings.TrimSpace(repeat)
	if repeat != "" {
		sched, err := cronParser.Parse(repeat)
		if err != nil {
			return Reminder{}, fmt.Errorf("%w: invalid repeat %q: %v", ErrInvalidInput, repeat, err)
		}
		if at.IsZero() {
			at = sched.Next(s.now())
		}
	}
	if at.IsZero() {
		return Reminder{}, fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	r := Reminder{
		ID:            uuid.NewString(),
		Message:       message,
		ScheduledTime: at,
		Repeat:        repeat,
		CreatedAt:     s.now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	return r, nil
}

func (s *service) List(ctx context.Context) ([]Reminder, error) {
	return s.repo.List(ctx)
}

func (s *service) Cancel(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

// FireDue срабатывает все просроченные напоминания: fired → доставка →
// удаление (или перенос на следующий запуск для cron).
func (s *service) FireDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.ListDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	fired := 0
	for _, r := range due {
		r.Fired = true
		if err := s.repo.Update(ctx, r); err != nil {
			s.logErr("mark reminder fired", err)
			continue
		}
		fired++

		var audioURL string
		if s.deliverer != nil {
			url, err := s.deliverer.Deliver(ctx, r)
			if err != nil {
				s.logErr("deliver reminder "+r.ID, err)
			}
			audioURL = url
			s.logDelivered(r, url)
		}

		if r.Repeat == "" {
			if err := s.repo.Delete(ctx, r.ID); err != nil {
				s.logErr("delete fired reminder", err)
			}
			continue
		}

		sched, err := cronParser.Parse(r.Repeat)
		if err != nil {
			s.logErr("parse repeat of "+r.ID, err)
			if err := s.repo.Delete(ctx, r.ID); err != nil {
				s.logErr("delete reminder with bad repeat", err)
			}
			continue
		}
		// у повторяющихся храним ссылку на последнее аудио
		if audioURL != "" {
			r.AudioURL = audioURL
		}
		r.ScheduledTime = sched.Next(now)
		r.Fired = false
		if err := s.repo.Update(ctx, r); err != nil {
			s.logErr("reschedule reminder", err)
		}
	}

	return fired, nil
}

func (s *service) logDelivered(r Reminder, audioURL string) {
	if s.log == nil {
		return
	}
	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "reminder delivered",
		Service: "reminder",
		Fields:  map[string]any{"reminder_id": r.ID, "audio_url": audioURL},
	})
}

func (s *service) logErr(msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Log(logger.LogEntry{Level: "error", Message: msg, Service: "reminder", Error: err})
}
