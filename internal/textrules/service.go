package textrules

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

type service struct {
	repo Repo
}

func NewService(repo Repo) Service {
	return &service{repo: repo}
}

// Process приводит транскрипт к нижнему регистру и применяет правила:
// сначала буквенные, затем словесные (фразы сопоставляются целыми словами).
func (s *service) Process(ctx context.Context, text string) (string, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", nil
	}

	// 1) letters
	letterRules, err := s.repo.ListLetterRules(ctx)
	if err != nil {
		return "", fmt.Errorf("list letter rules: %w", err)
	}

	if len(letterRules) > 0 {
		repl := make(map[rune]rune, len(letterRules))
		for _, rule := range letterRules {
			from, to := []rune(rule.From), []rune(rule.To)
			if len(from) == 1 && len(to) == 1 {
				repl[unicode.ToLower(from[0])] = to[0]
			}
		}

		var b strings.Builder
		for _, r := range text {
			if to, ok := repl[r]; ok {
				r = to
			}
			b.WriteRune(r)
		}
		text = b.String()
	}

	// 2) words
	wordRules, err := s.repo.ListWordRules(ctx)
	if err != nil {
		return "", fmt.Errorf("list word rules: %w", err)
	}

	tokens := strings.FieldsFunc(text, unicode.IsSpace)
	if len(wordRules) == 0 {
		return strings.Join(tokens, " "), nil
	}

	for _, rule := range wordRules {
		from := strings.Fields(strings.ToLower(rule.From))
		if len(from) == 0 {
			continue
		}
		tokens = replacePhrase(tokens, from, strings.Fields(rule.To))
	}

	return strings.Join(tokens, " "), nil
}

func replacePhrase(tokens, from, to []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if hasPhraseAt(tokens, i, from) {
			out = append(out, to...)
			i += len(from)
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func hasPhraseAt(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, w := range phrase {
		// пунктуацию на конце слова ASR ставит сам ("aspirin?")
		if strings.TrimRightFunc(tokens[i+j], unicode.IsPunct) != w {
			return false
		}
	}
	return true
}

// ValidateLetterRule: обе стороны ровно по одной руне.
func ValidateLetterRule(from, to string) error {
	if len([]rune(from)) != 1 || len([]rune(to)) != 1 {
		return fmt.Errorf("%w: letter rule needs exactly one rune on each side", ErrInvalidRule)
	}
	return nil
}

func ValidateWordRule(from, to string) error {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: word rule needs non-empty from and to", ErrInvalidRule)
	}
	return nil
}
