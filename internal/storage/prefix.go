package storage

import "context"

// WithPrefix namespaces every key with a fixed prefix so one database can
// hold the slots of many users while each financial store still uses the
// canonical key names.
func WithPrefix(store SlotStore, prefix string) SlotStore {
	return &prefixStore{store: store, prefix: prefix}
}

type prefixStore struct {
	store  SlotStore
	prefix string
}

func (p *prefixStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixStore) Set(ctx context.Context, key string, value []byte) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixStore) SetMany(ctx context.Context, values map[string][]byte) error {
	prefixed := make(map[string][]byte, len(values))
	for key, value := range values {
		prefixed[p.prefix+key] = value
	}
	return p.store.SetMany(ctx, prefixed)
}

// Close is a no-op: the wrapped store owns the underlying resources.
func (p *prefixStore) Close() error {
	return nil
}
