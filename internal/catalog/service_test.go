package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []Medicine {
	return []Medicine{
		{
			Name:        "Paracetamol",
			GenericName: "Acetaminophen",
			Use:         "Fever and mild pain.",
			Dosage:      "500 mg every 6 hours.",
			SideEffects: "Nausea.",
			BrandNames:  []string{"Crocin", "Calpol"},
			Interactions: map[string]string{
				"warfarin": "Raises INR.",
			},
		},
		{
			Name:        "Aspirin",
			Use:         "Pain and fever.",
			Dosage:      "300 mg.",
			SideEffects: "Stomach bleeding.",
		},
		{
			Name:        "Warfarin",
			Use:         "Prevents blood clots.",
			Dosage:      "As directed.",
			SideEffects: "Bleeding.",
		},
		{
			Name:        "Vitamin D3",
			Use:         "Supplement.",
			Dosage:      "1000 IU daily.",
			SideEffects: "Rare.",
		},
	}
}

func newTestCatalog(t *testing.T) Catalog {
	t.Helper()
	c, err := New(testRecords())
	require.NoError(t, err)
	return c
}

func TestLookup_CaseVariations(t *testing.T) {
	c := newTestCatalog(t)
	want := testRecords()[1]

	for _, name := range []string{"aspirin", "ASPIRIN", "Aspirin", "  aSpIrIn \t", "aspirin\n"} {
		got, err := c.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	got, err := c.Lookup("vitamin   d3")
	require.NoError(t, err)
	assert.Equal(t, "Vitamin D3", got.Name)
}

func TestLookup_NotFound(t *testing.T) {
	c := newTestCatalog(t)

	for _, name := range []string{"", "ibuprofen", "aspirine", "asp"} {
		_, err := c.Lookup(name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Medicine{{Name: "Aspirin"}, {Name: " aspirin "}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = New([]Medicine{{Name: "  "}})
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	c := newTestCatalog(t)

	cases := []struct {
		query string
		want  string
	}{
		{"aspirin", "Aspirin"},
		{"what is the dosage of aspirin", "Aspirin"},
		{"Tell me about PARACETAMOL please", "Paracetamol"},
		{"acetaminophen", "Paracetamol"},
		{"side effects of crocin", "Paracetamol"},
		{"paracet", "Paracetamol"},
		{"dosage of paracet tablets", "Paracetamol"},
		{"vitamin d3 dose", "Vitamin D3"},
	}
	for _, tc := range cases {
		got, err := c.Search(tc.query)
		require.NoError(t, err, tc.query)
		assert.Equal(t, tc.want, got.Name, tc.query)
	}
}

func TestSearch_NotFound(t *testing.T) {
	c := newTestCatalog(t)

	for _, q := range []string{"", "   ", "a", "in", "what is the dosage", "ibuprofen"} {
		_, err := c.Search(q)
		assert.ErrorIs(t, err, ErrNotFound, q)
	}
}

func TestList_SortedByName(t *testing.T) {
	c := newTestCatalog(t)

	var names []string
	for _, m := range c.List() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Aspirin", "Paracetamol", "Vitamin D3", "Warfarin"}, names)
}

func TestInteraction(t *testing.T) {
	c := newTestCatalog(t)

	note, err := c.Interaction("paracetamol", "WARFARIN")
	require.NoError(t, err)
	assert.Equal(t, "Raises INR.", note)

	// в обратную сторону тоже
	note, err = c.Interaction("warfarin", "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, "Raises INR.", note)

	_, err = c.Interaction("aspirin", "warfarin")
	assert.ErrorIs(t, err, ErrNoInteraction)

	_, err = c.Interaction("aspirin", "unknown")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadFile_ObjectAndArray(t *testing.T) {
	dir := t.TempDir()

	obj := filepath.Join(dir, "obj.json")
	require.NoError(t, os.WriteFile(obj, []byte(`{
		"Aspirin": {"use": "Pain.", "dosage": "300 mg", "sideEffects": "Bleeding"},
		"Paracetamol": {"uses": "Fever", "dosage": "500 mg", "side_effects": "Nausea", "brand_names": ["Crocin"]}
	}`), 0o644))

	c, err := Load(obj)
	require.NoError(t, err)

	p, err := c.Lookup("paracetamol")
	require.NoError(t, err)
	assert.Equal(t, "Fever", p.Use)
	assert.Equal(t, "Nausea", p.SideEffects)
	assert.Equal(t, []string{"Crocin"}, p.BrandNames)

	arr := filepath.Join(dir, "arr.json")
	require.NoError(t, os.WriteFile(arr, []byte(`[
		{"name": "Aspirin", "use": "Pain.", "dosage": "300 mg", "sideEffects": "Bleeding"}
	]`), 0o644))

	c, err = Load(arr)
	require.NoError(t, err)
	a, err := c.Lookup("ASPIRIN")
	require.NoError(t, err)
	assert.Equal(t, "Pain.", a.Use)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"Aspirin": `), 0o644))
	_, err = Load(bad)
	require.Error(t, err)

	noName := filepath.Join(dir, "noname.json")
	require.NoError(t, os.WriteFile(noName, []byte(`[{"use": "x"}]`), 0o644))
	_, err = Load(noName)
	require.Error(t, err)

	scalar := filepath.Join(dir, "scalar.json")
	require.NoError(t, os.WriteFile(scalar, []byte(`42`), 0o644))
	_, err = Load(scalar)
	require.Error(t, err)
}

func TestBundledCatalogLoads(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "data", "medicines.json"))
	require.NoError(t, err)

	m, err := c.Lookup("aspirin")
	require.NoError(t, err)
	assert.NotEmpty(t, m.Use)
	assert.NotEmpty(t, c.List())
}
