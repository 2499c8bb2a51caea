package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type pgRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) Repo {
	return &pgRepo{db: db}
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reminders (
			id           TEXT PRIMARY KEY,
			message      TEXT NOT NULL,
			scheduled_at TIMESTAMPTZ NOT NULL,
			repeat_expr  TEXT NOT NULL DEFAULT '',
			fired        BOOLEAN NOT NULL DEFAULT FALSE,
			audio_url    TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS reminders_due_idx ON reminders (scheduled_at) WHERE NOT fired;
	`)
	return err
}

func (r *pgRepo) Create(ctx context.Context, rem Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, message, scheduled_at, repeat_expr, fired, audio_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rem.ID, rem.Message, rem.ScheduledTime, rem.Repeat, rem.Fired, rem.AudioURL, rem.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("reminder %s already exists", rem.ID)
	}
	return err
}

func (r *pgRepo) Update(ctx context.Context, rem Reminder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET message = $2, scheduled_at = $3, repeat_expr = $4, fired = $5, audio_url = $6
		WHERE id = $1
	`, rem.ID, rem.Message, rem.ScheduledTime, rem.Repeat, rem.Fired, rem.AudioURL)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *pgRepo) List(ctx context.Context) ([]Reminder, error) {
	return r.query(ctx, `
		SELECT id, message, scheduled_at, repeat_expr, fired, audio_url, created_at
		FROM reminders
		ORDER BY scheduled_at ASC, id ASC
	`)
}

func (r *pgRepo) ListDue(ctx context.Context, now time.Time) ([]Reminder, error) {
	return r.query(ctx, `
		SELECT id, message, scheduled_at, repeat_expr, fired, audio_url, created_at
		FROM reminders
		WHERE NOT fired AND scheduled_at <= $1
		ORDER BY scheduled_at ASC, id ASC
	`, now)
}

func (r *pgRepo) query(ctx context.Context, q string, args ...any) ([]Reminder, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reminder
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(
			&rem.ID,
			&rem.Message,
			&rem.ScheduledTime,
			&rem.Repeat,
			&rem.Fired,
			&rem.AudioURL,
			&rem.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
