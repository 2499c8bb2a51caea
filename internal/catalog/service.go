package catalog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// минимальная длина слова запроса, по которой ищем префикс имени
const minTokenLen = 4

// слова вопроса, которые не должны совпадать с названиями
var stopWords = map[string]struct{}{
	"what": {}, "tell": {}, "about": {}, "dosage": {}, "dose": {}, "side": {},
	"effect": {}, "effects": {}, "used": {}, "uses": {}, "prescription": {},
	"prescribe": {}, "doctor": {}, "much": {}, "should": {}, "take": {},
	"with": {}, "does": {}, "medicine": {}, "tablet": {}, "please": {},
	"kitna": {}, "kitni": {}, "karta": {},
}

type catalog struct {
	byKey map[string]Medicine
	keys  []string // отсортированы, для детерминированного поиска
}

func New(records []Medicine) (Catalog, error) {
	c := &catalog{byKey: make(map[string]Medicine, len(records))}

	for _, m := range records {
		key := normalize(m.Name)
		if key == "" {
			return nil, fmt.Errorf("catalog: medicine with empty name")
		}
		if _, dup := c.byKey[key]; dup {
			return nil, fmt.Errorf("catalog: duplicate medicine %q", m.Name)
		}
		c.byKey[key] = m
		c.keys = append(c.keys, key)
	}
	sort.Strings(c.keys)

	return c, nil
}

// Load: LoadFile + New; ошибка здесь фатальна для процесса.
func Load(path string) (Catalog, error) {
	records, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(records)
}

func (c *catalog) Lookup(name string) (Medicine, error) {
	if m, ok := c.byKey[normalize(name)]; ok {
		return m, nil
	}
	return Medicine{}, ErrNotFound
}

func (c *catalog) Search(query string) (Medicine, error) {
	q := normalize(query)
	if q == "" {
		return Medicine{}, ErrNotFound
	}

	// 1) точное имя
	if m, ok := c.byKey[q]; ok {
		return m, nil
	}

	// 2) имя внутри фразы или фраза внутри имени
	for _, key := range c.keys {
		if matches(q, key) {
			return c.byKey[key], nil
		}
	}

	// 3) generic name
	for _, key := range c.keys {
		m := c.byKey[key]
		g := normalize(m.GenericName)
		if g != "" && matches(q, g) {
			return m, nil
		}
	}

	// 4) бренды
	for _, key := range c.keys {
		m := c.byKey[key]
		for _, brand := range m.BrandNames {
			b := normalize(brand)
			if b != "" && matches(q, b) {
				return m, nil
			}
		}
	}

	// 5) отдельные слова как префикс имени ("paracet" → paracetamol)
	for _, tok := range tokens(q) {
		if len([]rune(tok)) < minTokenLen {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		for _, key := range c.keys {
			if strings.HasPrefix(key, tok) {
				return c.byKey[key], nil
			}
		}
	}

	return Medicine{}, ErrNotFound
}

func (c *catalog) List() []Medicine {
	out := make([]Medicine, 0, len(c.keys))
	for _, key := range c.keys {
		out = append(out, c.byKey[key])
	}
	return out
}

func (c *catalog) Interaction(a, b string) (string, error) {
	ma, err := c.Lookup(a)
	if err != nil {
		return "", fmt.Errorf("%s: %w", a, err)
	}
	mb, err := c.Lookup(b)
	if err != nil {
		return "", fmt.Errorf("%s: %w", b, err)
	}

	if note, ok := interactionWith(ma, mb.Name); ok {
		return note, nil
	}
	if note, ok := interactionWith(mb, ma.Name); ok {
		return note, nil
	}
	return "", ErrNoInteraction
}

func interactionWith(m Medicine, other string) (string, bool) {
	want := normalize(other)
	for name, note := range m.Interactions {
		if normalize(name) == want {
			return note, true
		}
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// matches: имя целиком во фразе, либо достаточно длинная фраза входит в имя.
func matches(q, name string) bool {
	if containsWord(q, name) {
		return true
	}
	return len([]rune(q)) >= minTokenLen && strings.Contains(name, q)
}

// containsWord: needle встречается в haystack целыми словами.
func containsWord(haystack, needle string) bool {
	hs := tokens(haystack)
	ns := tokens(needle)
	if len(ns) == 0 || len(ns) > len(hs) {
		return false
	}
	for i := 0; i+len(ns) <= len(hs); i++ {
		match := true
		for j := range ns {
			if hs[i+j] != ns[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
