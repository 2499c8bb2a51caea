package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
)

const systemPrompt = `You are MediVoice, a voice medication assistant.
Answers are spoken aloud: reply in one or two short plain sentences, no lists, no markdown.
You can give general medicine information, set reminders and check interactions between medicines.
Never diagnose. For anything serious advise the user to talk to a doctor or pharmacist.`

type AiService struct {
	client   ChatClient // nil → только правила
	notifier ErrorNotifier
	timeout  time.Duration
	log      *logger.ZapLogger
}

func NewAiService(client ChatClient, notifier ErrorNotifier, timeout time.Duration, log *logger.ZapLogger) *AiService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AiService{client: client, notifier: notifier, timeout: timeout, log: log}
}

// диагностика ошибок LLM для уведомления
func analyzeOpenAIError(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "status code: 401"):
		return "Invalid OpenAI API key."
	case strings.Contains(msg, "status code: 404"):
		return "Model not found."
	case strings.Contains(msg, "status code: 429"):
		return "OpenAI rate limit exceeded."
	case strings.Contains(msg, "status code: 400") && strings.Contains(msg, "model"):
		return "Wrong model name."
	case strings.Contains(msg, "status code: 400"):
		return "Bad request to OpenAI."
	case strings.Contains(msg, "status code: 500"):
		return "OpenAI internal error."
	case strings.Contains(msg, "deadline exceeded"):
		return "OpenAI timeout."
	}
	return "Unknown OpenAI error: " + err.Error()
}

func (s *AiService) Reply(ctx context.Context, prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if s.client == nil || prompt == "" {
		return RuleBasedReply(prompt)
	}

	ctxGPT, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.client.GetCompletion(ctxGPT, systemPrompt, prompt)
	reply = strings.TrimSpace(reply)

	if err != nil {
		diag := analyzeOpenAIError(err)
		s.log.Log(logger.LogEntry{Level: "error", Message: "[ai] " + diag, Service: "ai", Error: err})
		if s.notifier != nil {
			_ = s.notifier.Notify(ctx, err, fmt.Sprintf("Fallback chat failed after %.1fs\n%s", time.Since(start).Seconds(), diag))
		}
		return RuleBasedReply(prompt)
	}
	if reply == "" {
		return RuleBasedReply(prompt)
	}
	return reply
}

// RuleBasedReply: ответы без LLM.
func RuleBasedReply(prompt string) string {
	p := strings.ToLower(prompt)

	switch {
	case containsAnyWord(p, "hello", "hi", "hey"):
		return "Hello! I'm MediVoice AI. I can help you with medicine information, set reminders, and check interactions."
	case strings.Contains(p, "thank"):
		return "You're welcome! Let me know if you need any more help with medicines."
	case containsAnyWord(p, "medicine", "medicines", "drug", "drugs", "pill", "pills", "tablet", "tablets"):
		return "I can help you find information about medicines. Please tell me the name of the medicine you're interested in."
	case strings.Contains(p, "remind"):
		return "I can help you set reminders for taking medicines. Please tell me the time and what you'd like to be reminded about."
	case p == "":
		return "Sorry, I didn't catch that. Please say the name of a medicine."
	}
	return fmt.Sprintf("I understand you're asking: '%s'. I'm your medical assistant. I can help with medicine information, reminders, and checking interactions between medicines.", prompt)
}

func containsAnyWord(text string, words ...string) bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}
