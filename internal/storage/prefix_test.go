package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStore()

	alice := WithPrefix(shared, "user:alice:")
	bob := WithPrefix(shared, "user:bob:")

	require.NoError(t, alice.Set(ctx, "currency", []byte(`"VND"`)))
	require.NoError(t, bob.Set(ctx, "currency", []byte(`"USD"`)))

	got, err := alice.Get(ctx, "currency")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"VND"`), got)

	got, err = bob.Get(ctx, "currency")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"USD"`), got)

	// raw keys carry the prefix
	got, err = shared.Get(ctx, "user:alice:currency")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"VND"`), got)

	_, err = shared.Get(ctx, "currency")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrefixSetMany(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStore()
	scoped := WithPrefix(shared, "user:1:")

	require.NoError(t, scoped.SetMany(ctx, map[string][]byte{
		"transactions": []byte(`[]`),
		"budgets":      []byte(`[]`),
	}))

	_, err := shared.Get(ctx, "user:1:transactions")
	assert.NoError(t, err)
	_, err = shared.Get(ctx, "user:1:budgets")
	assert.NoError(t, err)
}

func TestPrefixCloseLeavesBackingStoreOpen(t *testing.T) {
	shared := NewMemoryStore()
	scoped := WithPrefix(shared, "user:1:")
	require.NoError(t, scoped.Close())

	err := shared.Set(context.Background(), "k", []byte("v"))
	assert.NoError(t, err)
}
