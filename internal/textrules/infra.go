package textrules

import (
	"context"
	"database/sql"
	"strings"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

// EnsureSchema создаёт таблицы правил, если их ещё нет.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transcript_letter_rules (
			from_char TEXT PRIMARY KEY,
			to_char   TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS transcript_word_rules (
			from_word TEXT PRIMARY KEY,
			to_word   TEXT NOT NULL
		);
	`)
	return err
}

// ===== LETTERS =====

func (r *repo) ListLetterRules(ctx context.Context) ([]LetterRule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT from_char, to_char FROM transcript_letter_rules ORDER BY from_char`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LetterRule
	for rows.Next() {
		var rr LetterRule
		if err := rows.Scan(&rr.From, &rr.To); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *repo) AddLetterRule(ctx context.Context, from, to string) error {
	if err := ValidateLetterRule(from, to); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transcript_letter_rules (from_char, to_char)
		 VALUES ($1, $2)
		 ON CONFLICT (from_char) DO UPDATE SET to_char = EXCLUDED.to_char`,
		strings.ToLower(from), to,
	)
	return err
}

func (r *repo) DeleteLetterRule(ctx context.Context, from string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transcript_letter_rules WHERE from_char = $1`,
		strings.ToLower(from),
	)
	return err
}

// ===== WORDS =====

func (r *repo) ListWordRules(ctx context.Context) ([]WordRule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT from_word, to_word FROM transcript_word_rules ORDER BY from_word`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WordRule
	for rows.Next() {
		var rr WordRule
		if err := rows.Scan(&rr.From, &rr.To); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *repo) AddWordRule(ctx context.Context, from, to string) error {
	if err := ValidateWordRule(from, to); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transcript_word_rules (from_word, to_word)
		 VALUES ($1, $2)
		 ON CONFLICT (from_word) DO UPDATE SET to_word = EXCLUDED.to_word`,
		normalizePhrase(from), strings.TrimSpace(to),
	)
	return err
}

func (r *repo) DeleteWordRule(ctx context.Context, from string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transcript_word_rules WHERE from_word = $1`,
		normalizePhrase(from),
	)
	return err
}

func normalizePhrase(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
