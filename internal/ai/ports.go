package ai

import "context"

// ChatClient: OpenAI-совместимый чат (OpenAI, Groq, локальный прокси).
type ChatClient interface {
	GetCompletion(ctx context.Context, system, prompt string) (string, error)
}

type ErrorNotifier interface {
	Notify(ctx context.Context, err error, details string) error
}

type Service interface {
	// Reply никогда не возвращает пустую строку: без LLM отвечают правила.
	Reply(ctx context.Context, prompt string) string
}
