package catalog

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
)

// fileRecord принимает и старые ключи датасета (uses, side_effects, generic_name ...).
type fileRecord struct {
	Name         string            `json:"name"`
	GenericName  string            `json:"genericName"`
	GenericName2 string            `json:"generic_name"`
	Use          string            `json:"use"`
	Uses         string            `json:"uses"`
	Dosage       string            `json:"dosage"`
	SideEffects  string            `json:"sideEffects"`
	SideEffects2 string            `json:"side_effects"`
	Prescription string            `json:"prescription"`
	BrandNames   []string          `json:"brandNames"`
	BrandNames2  []string          `json:"brand_names"`
	Interactions map[string]string `json:"interactions"`
}

func (f fileRecord) toMedicine(fallbackName string) Medicine {
	m := Medicine{
		Name:         strings.TrimSpace(f.Name),
		GenericName:  firstNonEmpty(f.GenericName, f.GenericName2),
		Use:          firstNonEmpty(f.Use, f.Uses),
		Dosage:       strings.TrimSpace(f.Dosage),
		SideEffects:  firstNonEmpty(f.SideEffects, f.SideEffects2),
		Prescription: strings.TrimSpace(f.Prescription),
		BrandNames:   f.BrandNames,
		Interactions: f.Interactions,
	}
	if len(m.BrandNames) == 0 {
		m.BrandNames = f.BrandNames2
	}
	if m.Name == "" {
		m.Name = strings.TrimSpace(fallbackName)
	}
	return m
}

// LoadFile читает каталог из JSON: объект {name: record} или массив record'ов.
func LoadFile(path string) ([]Medicine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Decode(data)
}

func Decode(data []byte) ([]Medicine, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode catalog: empty file")
	}

	switch trimmed[0] {
	case '{':
		var byName map[string]fileRecord
		if err := json.Unmarshal(trimmed, &byName); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		out := make([]Medicine, 0, len(byName))
		for name, rec := range byName {
			out = append(out, rec.toMedicine(name))
		}
		return out, nil

	case '[':
		var list []fileRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		out := make([]Medicine, 0, len(list))
		for i, rec := range list {
			m := rec.toMedicine("")
			if m.Name == "" {
				return nil, fmt.Errorf("decode catalog: record %d has no name", i)
			}
			out = append(out, m)
		}
		return out, nil
	}

	return nil, fmt.Errorf("decode catalog: expected JSON object or array")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
