package reminder

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestExpectOneRow(t *testing.T) {
	assert.NoError(t, expectOneRow(fakeResult{rows: 1}))
	assert.ErrorIs(t, expectOneRow(fakeResult{rows: 0}), ErrNotFound)

	boom := errors.New("driver does not report rows")
	assert.ErrorIs(t, expectOneRow(fakeResult{err: boom}), boom)
}

// Нужен живой Postgres, без TEST_DATABASE_URL тест пропускается.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping Postgres integration test - TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, EnsureSchema(ctx, db))
	return db
}

func TestPostgresRepo_Integration(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresRepo(db)
	ctx := context.Background()

	at := time.Now().UTC().Truncate(time.Second).Add(-time.Minute)
	due := Reminder{
		ID:            uuid.NewString(),
		Message:       "take aspirin",
		ScheduledTime: at,
		Repeat:        "0 8 * * *",
		AudioURL:      "https://s3.local/reminders/a.mp3",
		CreatedAt:     at,
	}
	later := Reminder{
		ID:            uuid.NewString(),
		Message:       "take metformin",
		ScheduledTime: at.Add(time.Hour),
		CreatedAt:     at,
	}
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM reminders WHERE id = ANY($1)`,
			pq.Array([]string{due.ID, later.ID}))
	})

	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, later))
	assert.Error(t, repo.Create(ctx, due), "duplicate id")

	list := onlyIDs(t, repo, due.ID, later.ID)
	require.Len(t, list, 2)
	assert.Equal(t, due.ID, list[0].ID)
	assert.Equal(t, "take aspirin", list[0].Message)
	assert.True(t, at.Equal(list[0].ScheduledTime))
	assert.Equal(t, "0 8 * * *", list[0].Repeat)
	assert.False(t, list[0].Fired)
	assert.Equal(t, "https://s3.local/reminders/a.mp3", list[0].AudioURL)
	assert.True(t, at.Equal(list[0].CreatedAt))
	assert.Equal(t, later.ID, list[1].ID)

	dueNow, err := repo.ListDue(ctx, at)
	require.NoError(t, err)
	assert.Contains(t, idsOf(dueNow), due.ID)
	assert.NotContains(t, idsOf(dueNow), later.ID)

	due.Fired = true
	require.NoError(t, repo.Update(ctx, due))
	dueNow, err = repo.ListDue(ctx, at)
	require.NoError(t, err)
	assert.NotContains(t, idsOf(dueNow), due.ID)

	require.NoError(t, repo.Delete(ctx, due.ID))
	assert.ErrorIs(t, repo.Delete(ctx, due.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, due), ErrNotFound)
}

func onlyIDs(t *testing.T, repo Repo, ids ...string) []Reminder {
	t.Helper()
	all, err := repo.List(context.Background())
	require.NoError(t, err)

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Reminder
	for _, r := range all {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func idsOf(list []Reminder) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}
