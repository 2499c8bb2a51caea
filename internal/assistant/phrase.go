package assistant

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// "remind me to take aspirin at 8:30 pm", "remind me to drink water in 20 minutes",
// "remind me to take metformin every day at 9 am".
// Сообщение жадное: время берётся после последнего "at"/"in".
var reminderRe = regexp.MustCompile(
	`^(?:please\s+)?(?:set\s+a\s+reminder\s+to|remind\s+me\s+(?:to\s+)?)\s*(.+)\s+(at|in)\s+(.+?)(?:\s+(every\s+day|daily))?$`,
)

// команда без времени: "remind me to take aspirin"
var reminderNoTimeRe = regexp.MustCompile(
	`^(?:please\s+)?(?:set\s+a\s+reminder|remind\s+me)(?:\s+to\b.*)?$`,
)

// errNoTime: команда напоминания есть, а времени нет.
var errNoTime = errors.New("reminder time is missing")

// дальше года вперёд не планируем
const maxAhead = 366 * 24 * time.Hour

var (
	relativeRe = regexp.MustCompile(`^(\d+|an?|one|two|three|four|five|six|seven|eight|nine|ten|fifteen|twenty|thirty|forty|forty five|fifty)\s+(second|minute|min|hour|day)s?$`)
	absoluteRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
)

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "fifteen": 15,
	"twenty": 20, "thirty": 30, "forty": 40, "forty five": 45, "fifty": 50,
}

var units = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"min":    time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
}

type reminderPhrase struct {
	Message string
	At      time.Time
	Repeat  string // cron, только для "every day at ..."
}

// parseReminderPhrase разбирает голосовую команду. ok=false, если это не
// команда напоминания; err != nil, если команда есть, но время не понято.
func parseReminderPhrase(q string, now time.Time) (p reminderPhrase, ok bool, err error) {
	q = strings.TrimSpace(strings.ToLower(q))
	q = strings.NewReplacer("a.m.", "am", "p.m.", "pm", "a.m", "am", "p.m", "pm").Replace(q)
	q = strings.TrimRight(q, " .!?")
	q = strings.Join(strings.Fields(q), " ")

	m := reminderRe.FindStringSubmatch(q)
	if m == nil {
		if reminderNoTimeRe.MatchString(q) {
			return reminderPhrase{}, true, errNoTime
		}
		return reminderPhrase{}, false, nil
	}

	p.Message = strings.TrimSpace(m[1])
	daily := m[4] != ""
	for _, suffix := range []string{" every day", " daily"} {
		if strings.HasSuffix(p.Message, suffix) {
			p.Message = strings.TrimSpace(strings.TrimSuffix(p.Message, suffix))
			daily = true
		}
	}
	if p.Message == "" {
		return reminderPhrase{}, true, fmt.Errorf("nothing to remind about")
	}
	when := strings.TrimSpace(strings.TrimPrefix(m[3], "about "))

	switch m[2] {
	case "in":
		d, err := parseRelative(when)
		if err != nil {
			return reminderPhrase{}, true, err
		}
		p.At = now.Add(d)
	case "at":
		hour, minute, err := parseClock(when)
		if err != nil {
			return reminderPhrase{}, true, err
		}
		p.At = nextClock(now, hour, minute)
		if daily {
			p.Repeat = fmt.Sprintf("%d %d * * *", minute, hour)
		}
	}
	return p, true, nil
}

func parseRelative(s string) (time.Duration, error) {
	if s == "half an hour" {
		return 30 * time.Minute, nil
	}
	m := relativeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("cannot understand %q", s)
	}
	n, ok := numberWords[m[1]]
	if !ok {
		var err error
		if n, err = strconv.Atoi(m[1]); err != nil {
			return 0, err
		}
	}
	if n <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	unit := units[m[2]]
	if int64(n) > int64(maxAhead/unit) {
		return 0, fmt.Errorf("%q is too far ahead", s)
	}
	return time.Duration(n) * unit, nil
}

func parseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSuffix(s, " o'clock")
	m := absoluteRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("cannot understand time %q", s)
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("invalid minutes in %q", s)
	}

	switch m[3] {
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("invalid hour in %q", s)
		}
		hour %= 12
		if m[3] == "pm" {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, 0, fmt.Errorf("invalid hour in %q", s)
		}
	}
	return hour, minute, nil
}

// nextClock: ближайшее hh:mm не раньше now; прошедшее время сегодня → завтра.
func nextClock(now time.Time, hour, minute int) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
