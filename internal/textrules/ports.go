package textrules

import (
	"context"
	"errors"
)

var ErrInvalidRule = errors.New("invalid rule")

type LetterRule struct {
	From string `json:"from"` // 1 rune
	To   string `json:"to"`   // 1 rune
}

// WordRule исправляет типичные ошибки распознавания: "para cetamol" → "paracetamol".
// From может состоять из нескольких слов.
type WordRule struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Repo interface {
	ListLetterRules(ctx context.Context) ([]LetterRule, error)
	ListWordRules(ctx context.Context) ([]WordRule, error)

	AddLetterRule(ctx context.Context, from, to string) error
	AddWordRule(ctx context.Context, from, to string) error

	DeleteLetterRule(ctx context.Context, from string) error
	DeleteWordRule(ctx context.Context, from string) error
}

type Service interface {
	Process(ctx context.Context, text string) (string, error)
}
