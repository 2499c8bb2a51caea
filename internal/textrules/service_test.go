package textrules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	Repo
}

func (failingRepo) ListLetterRules(context.Context) ([]LetterRule, error) {
	return nil, errors.New("db down")
}

func TestProcess_DefaultRules(t *testing.T) {
	svc := NewService(NewMemoryRepo(DefaultWordRules))
	ctx := context.Background()

	cases := map[string]string{
		"What is the dosage of Para Cetamol?": "what is the dosage of paracetamol",
		"  A  spirin  ":                       "aspirin",
		"ibu profen side affects":             "ibuprofen side effects",
		"remind me to take my pills":          "remind me to take my pills",
		"":                                    "",
	}
	for in, want := range cases {
		got, err := svc.Process(ctx, in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestProcess_LetterRules(t *testing.T) {
	repo := NewMemoryRepo(nil)
	ctx := context.Background()
	require.NoError(t, repo.AddLetterRule(ctx, "’", "'"))

	got, err := NewService(repo).Process(ctx, "what’s aspirin")
	require.NoError(t, err)
	assert.Equal(t, "what's aspirin", got)
}

func TestProcess_RepoError(t *testing.T) {
	_, err := NewService(failingRepo{}).Process(context.Background(), "aspirin")
	require.Error(t, err)
}

func TestMemoryRepo_CRUD(t *testing.T) {
	repo := NewMemoryRepo(nil)
	ctx := context.Background()

	require.NoError(t, repo.AddWordRule(ctx, "  Metro  Nidazole ", "metronidazole"))
	rules, err := repo.ListWordRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []WordRule{{From: "metro nidazole", To: "metronidazole"}}, rules)

	require.NoError(t, repo.DeleteWordRule(ctx, "METRO NIDAZOLE"))
	rules, err = repo.ListWordRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)

	assert.ErrorIs(t, repo.AddLetterRule(ctx, "ab", "c"), ErrInvalidRule)
	assert.ErrorIs(t, repo.AddWordRule(ctx, "x", " "), ErrInvalidRule)
}
