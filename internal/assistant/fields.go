package assistant

import (
	"strings"

	"github.com/Vovarama1992/medivoice/internal/catalog"
)

const (
	FieldUse          = "use"
	FieldDosage       = "dosage"
	FieldSideEffects  = "sideEffects"
	FieldPrescription = "prescription"
)

const infoNotAvailable = "Info not available for requested field"

var wakePhrases = []string{"hey murf medu", "hey murfmedu", "hey medu"}

// порядок важен: "what is the dosage" это про дозировку, а не про применение
var fieldKeywords = []struct {
	field    string
	keywords []string
}{
	{FieldSideEffects, []string{"side effect", "side effects", "side affect", "side affects", "reaction", "reactions"}},
	{FieldDosage, []string{"dosage", "dose", "doses", "how much", "how many", "kitni", "kitna"}},
	{FieldPrescription, []string{"prescription", "prescribe", "prescribed", "doctor", "over the counter"}},
	{FieldUse, []string{"use", "uses", "used", "ka use", "kya karta", "what is", "for what"}},
}

// stripWake убирает фразу-обращение. woke=true, если она была.
// Совпадение только по целым словам: "they medusa" не обращение.
func stripWake(q string) (rest string, woke bool) {
	tokens := strings.Fields(q)
	for _, p := range wakePhrases {
		phrase := strings.Fields(p)
		if i := phraseIndex(tokens, phrase); i >= 0 {
			kept := append(append([]string{}, tokens[:i]...), tokens[i+len(phrase):]...)
			return strings.Trim(strings.Join(kept, " "), " ,.!?"), true
		}
	}
	return q, false
}

// phraseIndex ищет phrase среди токенов, пунктуация по краям токена не мешает.
func phraseIndex(tokens, phrase []string) int {
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		ok := true
		for j := range phrase {
			if strings.Trim(tokens[i+j], ",.!?") != phrase[j] {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

// detectField: explicit=false, если ни одно ключевое слово не найдено (тогда use).
func detectField(q string) (field string, explicit bool) {
	words := wordsOf(q)
	for _, fk := range fieldKeywords {
		for _, kw := range fk.keywords {
			if containsPhrase(words, wordsOf(kw)) {
				return fk.field, true
			}
		}
	}
	return FieldUse, false
}

func fieldValue(m catalog.Medicine, field string) string {
	switch field {
	case FieldDosage:
		return m.Dosage
	case FieldSideEffects:
		return m.SideEffects
	case FieldPrescription:
		return m.Prescription
	default:
		return m.Use
	}
}

func formatField(m catalog.Medicine, field string) string {
	v := strings.TrimSpace(fieldValue(m, field))
	if v == "" {
		return m.Name + " - " + infoNotAvailable
	}
	return m.Name + " - " + v
}

func wordsOf(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'' || r == ':' || r >= 0x80)
	})
}

func containsPhrase(words, phrase []string) bool {
	return len(phrase) > 0 && phraseIndex(words, phrase) >= 0
}
