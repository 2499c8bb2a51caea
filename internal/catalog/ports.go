package catalog

import "errors"

var (
	ErrNotFound      = errors.New("medicine not found")
	ErrNoInteraction = errors.New("no known interaction")
)

type Medicine struct {
	Name         string            `json:"name"`
	GenericName  string            `json:"genericName,omitempty"`
	Use          string            `json:"use"`
	Dosage       string            `json:"dosage"`
	SideEffects  string            `json:"sideEffects"`
	Prescription string            `json:"prescription,omitempty"`
	BrandNames   []string          `json:"brandNames,omitempty"`
	Interactions map[string]string `json:"interactions,omitempty"` // другое лекарство → описание
}

// Catalog: read-only справочник, загружается один раз при старте.
type Catalog interface {
	// Lookup: точное совпадение имени без учёта регистра и лишних пробелов.
	Lookup(name string) (Medicine, error)
	// Search: нечёткий поиск для текста после распознавания речи.
	Search(query string) (Medicine, error)
	List() []Medicine
	Interaction(a, b string) (string, error)
}
