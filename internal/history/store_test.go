package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pixelart/apps/go-server/internal/db"
)

func newTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(sqlDB))
	return NewStore(sqlDB), sqlDB
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	anon := Owner{AnonymousID: "anon-1"}
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, st.Record(ctx, anon, Entry{
		Rows: 10, Columns: 15, ViewportWidth: 400, ViewportHeight: 300,
		Accepted: true, CreatedAt: base,
	}))
	require.NoError(t, st.Record(ctx, anon, Entry{
		Rows: 20, Columns: 30, ViewportWidth: 400, ViewportHeight: 300,
		Axis: "width", Limit: 20, CreatedAt: base.Add(500 * time.Millisecond),
	}))
	require.NoError(t, st.Record(ctx, Owner{AnonymousID: "anon-2"}, Entry{Rows: 1, Columns: 1, Accepted: true}))

	got, err := st.Recent(ctx, anon, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.False(t, got[0].Accepted)
	assert.Equal(t, "width", got[0].Axis)
	assert.Equal(t, 20, got[0].Limit)
	assert.Equal(t, 30, got[0].Columns)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(500*time.Millisecond)))

	assert.True(t, got[1].Accepted)
	assert.Empty(t, got[1].Axis)
	assert.Equal(t, 0, got[1].Limit)
	assert.Equal(t, 10, got[1].Rows)

	got, err = st.Recent(ctx, anon, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecord_AcceptedDropsAxis(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	owner := Owner{AnonymousID: "a"}

	require.NoError(t, st.Record(ctx, owner, Entry{Rows: 1, Columns: 1, Accepted: true, Axis: "width", Limit: 9}))
	got, err := st.Recent(ctx, owner, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Axis)
	assert.Zero(t, got[0].Limit)
}

func TestRecord_RequiresOwner(t *testing.T) {
	st, _ := newTestStore(t)
	assert.Error(t, st.Record(context.Background(), Owner{}, Entry{Rows: 1, Columns: 1}))
	_, err := st.Recent(context.Background(), Owner{}, 5)
	assert.Error(t, err)
}

func TestClaim(t *testing.T) {
	ctx := context.Background()
	st, sqlDB := newTestStore(t)

	_, err := sqlDB.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES ('u1','painter','x','2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	anon := Owner{AnonymousID: "anon-9"}
	require.NoError(t, st.Record(ctx, anon, Entry{Rows: 2, Columns: 2, Accepted: true}))
	require.NoError(t, st.Record(ctx, anon, Entry{Rows: 3, Columns: 3, Accepted: true}))

	n, err := st.Claim(ctx, "anon-9", "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := st.Recent(ctx, anon, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = st.Recent(ctx, Owner{UserID: "u1"}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	n, err = st.Claim(ctx, "", "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}
