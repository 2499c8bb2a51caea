package textrules

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// DefaultWordRules: частые ошибки ASR на названиях лекарств.
var DefaultWordRules = []WordRule{
	{From: "para cetamol", To: "paracetamol"},
	{From: "parasitamol", To: "paracetamol"},
	{From: "ibu profen", To: "ibuprofen"},
	{From: "a spirin", To: "aspirin"},
	{From: "as prin", To: "aspirin"},
	{From: "amoxy cillin", To: "amoxicillin"},
	{From: "side affects", To: "side effects"},
	{From: "dosis", To: "dosage"},
}

type memoryRepo struct {
	mu      sync.RWMutex
	letters map[string]string
	words   map[string]string
}

// NewMemoryRepo: хранилище правил без БД; seed копируется.
func NewMemoryRepo(seed []WordRule) Repo {
	r := &memoryRepo{
		letters: make(map[string]string),
		words:   make(map[string]string),
	}
	for _, w := range seed {
		r.words[normalizePhrase(w.From)] = strings.TrimSpace(w.To)
	}
	return r
}

func (r *memoryRepo) ListLetterRules(_ context.Context) ([]LetterRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]LetterRule, 0, len(r.letters))
	for from, to := range r.letters {
		out = append(out, LetterRule{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out, nil
}

func (r *memoryRepo) ListWordRules(_ context.Context) ([]WordRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]WordRule, 0, len(r.words))
	for from, to := range r.words {
		out = append(out, WordRule{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out, nil
}

func (r *memoryRepo) AddLetterRule(_ context.Context, from, to string) error {
	if err := ValidateLetterRule(from, to); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.letters[strings.ToLower(from)] = to
	return nil
}

func (r *memoryRepo) AddWordRule(_ context.Context, from, to string) error {
	if err := ValidateWordRule(from, to); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.words[normalizePhrase(from)] = strings.TrimSpace(to)
	return nil
}

func (r *memoryRepo) DeleteLetterRule(_ context.Context, from string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.letters, strings.ToLower(from))
	return nil
}

func (r *memoryRepo) DeleteWordRule(_ context.Context, from string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.words, normalizePhrase(from))
	return nil
}
