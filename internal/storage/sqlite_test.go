package storage

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLite(t)

	payloads := map[string][]byte{
		"transactions": []byte(`[{"description":"Cơm trưa văn phòng","category":"Ăn uống"}]`),
		"receipt":      []byte("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47})),
		"empty":        []byte("[]"),
	}

	for key, value := range payloads {
		require.NoError(t, store.Set(ctx, key, value))
	}
	for key, want := range payloads {
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, got, "slot %s", key)
	}
}

func TestSQLiteSetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newSQLite(t)

	require.NoError(t, store.Set(ctx, "currency", []byte(`"VND"`)))
	require.NoError(t, store.Set(ctx, "currency", []byte(`"USD"`)))

	got, err := store.Get(ctx, "currency")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"USD"`), got)
}

func TestSQLiteGetMissingKey(t *testing.T) {
	store := newSQLite(t)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSetMany(t *testing.T) {
	ctx := context.Background()
	store := newSQLite(t)

	require.NoError(t, store.SetMany(ctx, map[string][]byte{
		"transactions":          []byte(`[1]`),
		"recurringTransactions": []byte(`[2]`),
	}))

	got, err := store.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)
	got, err = store.Get(ctx, "recurringTransactions")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[2]`), got)
}
