package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

type memoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Reminder
}

func NewMemoryRepo() Repo {
	return &memoryRepo{byID: make(map[string]Reminder)}
}

func (r *memoryRepo) Create(_ context.Context, rem Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rem.ID == "" {
		return errors.New("reminder id required")
	}
	if _, exists := r.byID[rem.ID]; exists {
		return errors.New("reminder already exists")
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *memoryRepo) Update(_ context.Context, rem Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rem.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryRepo) List(_ context.Context) ([]Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Reminder, 0, len(r.byID))
	for _, rem := range r.byID {
		out = append(out, rem)
	}
	sortBySchedule(out)
	return out, nil
}

func (r *memoryRepo) ListDue(_ context.Context, now time.Time) ([]Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Reminder, 0)
	for _, rem := range r.byID {
		if !rem.Fired && !rem.ScheduledTime.After(now) {
			out = append(out, rem)
		}
	}
	sortBySchedule(out)
	return out, nil
}

func sortBySchedule(list []Reminder) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].ScheduledTime.Equal(list[j].ScheduledTime) {
			return list[i].ID < list[j].ID
		}
		return list[i].ScheduledTime.Before(list[j].ScheduledTime)
	})
}
