// Package storage provides durable key-value slots. Each slot holds one
// JSON-serialized collection; the financial store reads every slot once at
// startup and writes a slot back after every mutation.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a key that was never written.
var ErrNotFound = errors.New("storage: slot not found")

// SlotStore is a durable string-key to JSON-value store.
//
// SetMany applies all writes as a single atomic unit: either every key is
// updated or none is. Database-backed implementations run it inside one
// transaction.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Close() error
}
