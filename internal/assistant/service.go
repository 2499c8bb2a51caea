package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/medivoice/internal/ai"
	"github.com/Vovarama1992/medivoice/internal/catalog"
	"github.com/Vovarama1992/medivoice/internal/reminder"
	"github.com/Vovarama1992/medivoice/internal/speech"
	"github.com/Vovarama1992/medivoice/internal/textrules"
	"github.com/dustin/go-humanize"
)

type service struct {
	catalog   catalog.Catalog
	speech    Speech
	rules     textrules.Service
	reminders reminder.Service
	chat      ai.Service
	now       func() time.Time
	log       *logger.ZapLogger
}

func NewService(
	cat catalog.Catalog,
	sp Speech,
	rules textrules.Service,
	reminders reminder.Service,
	chat ai.Service,
	log *logger.ZapLogger,
) Service {
	return &service{
		catalog:   cat,
		speech:    sp,
		rules:     rules,
		reminders: reminders,
		chat:      chat,
		now:       time.Now,
		log:       log,
	}
}

func (s *service) Answer(ctx context.Context, text string) (Answer, error) {
	q := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if q == "" {
		return Answer{}, ErrEmptyQuery
	}

	// 1) обращение
	q, woke := stripWake(q)
	if woke && q == "" {
		return Answer{Reply: "yes tell me", Intent: IntentWake}, nil
	}

	// 2) напоминания
	if ans, ok, err := s.answerReminder(ctx, q); ok || err != nil {
		return ans, err
	}

	// 3) взаимодействие двух лекарств
	if ans, ok := s.answerInteraction(q); ok {
		return ans, nil
	}

	// 4) карточка лекарства
	field, explicit := detectField(q)
	if m, err := s.catalog.Search(q); err == nil {
		return Answer{
			Reply:    formatField(m, field),
			Intent:   IntentMedicine,
			Field:    field,
			Medicine: &m,
		}, nil
	}

	// 5) спросили про поле, но лекарство не нашли
	if explicit && field != FieldUse {
		return Answer{Reply: "Medicine not found.", Intent: IntentNotFound, Field: field}, nil
	}

	// 6) свободный разговор
	if s.chat == nil {
		return Answer{Reply: "Medicine not found.", Intent: IntentNotFound}, nil
	}
	return Answer{Reply: s.chat.Reply(ctx, q), Intent: IntentChat}, nil
}

func (s *service) answerReminder(ctx context.Context, q string) (Answer, bool, error) {
	if s.reminders == nil {
		return Answer{}, false, nil
	}

	words := wordsOf(q)
	if containsPhrase(words, []string{"my", "reminders"}) || containsPhrase(words, []string{"list", "reminders"}) {
		ans, err := s.listReminders(ctx)
		return ans, true, err
	}

	now := s.now()
	p, ok, err := parseReminderPhrase(q, now)
	if !ok {
		return Answer{}, false, nil
	}
	if errors.Is(err, errNoTime) {
		return Answer{
			Reply:  "When should I remind you? Try saying: remind me to take aspirin at 8 pm.",
			Intent: IntentReminder,
		}, true, nil
	}
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "info", Message: "[assistant] reminder phrase not understood: " + q, Service: "assistant", Error: err})
		return Answer{
			Reply:  "Sorry, I couldn't understand the time. Try saying: remind me to take aspirin at 8 pm.",
			Intent: IntentReminder,
		}, true, nil
	}

	r, err := s.reminders.Create(ctx, p.Message, p.At, p.Repeat)
	if errors.Is(err, reminder.ErrInvalidInput) {
		return Answer{Reply: "Sorry, I couldn't set that reminder.", Intent: IntentReminder}, true, nil
	}
	if err != nil {
		return Answer{}, true, fmt.Errorf("create reminder: %w", err)
	}

	return Answer{
		Reply:    confirmReminder(r, now),
		Intent:   IntentReminder,
		Reminder: &r,
	}, true, nil
}

func confirmReminder(r reminder.Reminder, now time.Time) string {
	when := r.ScheduledTime.In(now.Location())
	if r.Repeat != "" {
		return fmt.Sprintf("Okay, I will remind you to %s every day at %s.", r.Message, when.Format("3:04 PM"))
	}
	return fmt.Sprintf("Okay, I will remind you to %s at %s, %s.",
		r.Message,
		when.Format("3:04 PM"),
		humanize.RelTime(when, now, "ago", "from now"),
	)
}

func (s *service) listReminders(ctx context.Context) (Answer, error) {
	list, err := s.reminders.List(ctx)
	if err != nil {
		return Answer{}, fmt.Errorf("list reminders: %w", err)
	}
	if len(list) == 0 {
		return Answer{Reply: "You have no reminders.", Intent: IntentReminders}, nil
	}

	next := list[0]
	at := next.ScheduledTime.In(s.now().Location()).Format("3:04 PM")
	reply := fmt.Sprintf("You have %s. The next one is to %s at %s.",
		pluralReminders(len(list)), next.Message, at)
	return Answer{Reply: reply, Intent: IntentReminders, Reminder: &next}, nil
}

func pluralReminders(n int) string {
	if n == 1 {
		return "one reminder"
	}
	return fmt.Sprintf("%d reminders", n)
}

// answerInteraction: "can I take aspirin with ibuprofen"
func (s *service) answerInteraction(q string) (Answer, bool) {
	words := wordsOf(q)
	if !containsPhrase(words, []string{"with"}) && !containsPhrase(words, []string{"and"}) &&
		!strings.Contains(q, "interact") {
		return Answer{}, false
	}

	var found []catalog.Medicine
	for _, m := range s.catalog.List() {
		if containsPhrase(words, wordsOf(m.Name)) {
			found = append(found, m)
		}
	}
	if len(found) < 2 {
		return Answer{}, false
	}

	a, b := found[0], found[1]
	note, err := s.catalog.Interaction(a.Name, b.Name)
	if err != nil {
		return Answer{
			Reply:  fmt.Sprintf("%s and %s - No known interaction. Check with your pharmacist to be sure.", a.Name, b.Name),
			Intent: IntentInteraction,
		}, true
	}
	return Answer{
		Reply:  fmt.Sprintf("%s and %s - %s", a.Name, b.Name, note),
		Intent: IntentInteraction,
	}, true
}

func (s *service) Ask(ctx context.Context, audio []byte, contentType string) (AskResult, error) {
	start := time.Now()

	tr, err := s.speech.Transcribe(ctx, audio, contentType)
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "error", Message: "[assistant] transcription failed", Service: "assistant", Error: err})
		return AskResult{Answer: Answer{Reply: TranscriptionApology, Intent: IntentError}}, err
	}
	res := AskResult{Transcript: tr.Text, Confidence: tr.Confidence}

	text, err := s.rules.Process(ctx, tr.Text)
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "[assistant] transcript rules skipped", Service: "assistant", Error: err})
		text = tr.Text
	}

	ans, err := s.Answer(ctx, text)
	if errors.Is(err, ErrEmptyQuery) {
		ans, err = Answer{Reply: TranscriptionApology, Intent: IntentError}, nil
	}
	if err != nil {
		return res, err
	}
	res.Answer = ans

	res.Audio, err = s.speech.Synthesize(ctx, speech.SynthesisRequest{Text: ans.Reply})
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "error", Message: "[assistant] synthesis failed", Service: "assistant", Error: err})
		return res, err
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[assistant][%.1fs] ask intent=%s transcript=%q", time.Since(start).Seconds(), ans.Intent, tr.Text),
		Service: "assistant",
	})
	return res, nil
}

func (s *service) Speak(ctx context.Context, text, voiceID string) ([]byte, error) {
	return s.speech.Synthesize(ctx, speech.SynthesisRequest{Text: text, VoiceID: voiceID})
}
