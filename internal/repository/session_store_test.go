package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/pkg/database"
)

func exerciseSessionStorage(t *testing.T, store SessionStorage, advance func(time.Duration)) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "urCampusUser")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Set(ctx, "urCampusUser", []byte(`{"id":"1"}`), time.Minute))
	raw, err := store.Get(ctx, "urCampusUser")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(raw))

	require.NoError(t, store.Set(ctx, "urCampusUser", []byte(`{"id":"2"}`), time.Minute))
	raw, err = store.Get(ctx, "urCampusUser")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2"}`, string(raw))

	advance(2 * time.Minute)
	_, err = store.Get(ctx, "urCampusUser")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Set(ctx, "forever", []byte("x"), 0))
	advance(24 * time.Hour)
	_, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "forever"))
	_, err = store.Get(ctx, "forever")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStorage(t *testing.T) {
	store := NewMemorySessionStorage()
	now := time.Now()
	store.now = func() time.Time { return now }
	exerciseSessionStorage(t, store, func(d time.Duration) { now = now.Add(d) })
}

func TestSQLSessionStorage(t *testing.T) {
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLSessionStorage(context.Background(), db)
	require.NoError(t, err)
	now := time.Now()
	store.now = func() time.Time { return now }
	exerciseSessionStorage(t, store, func(d time.Duration) { now = now.Add(d) })
}
