package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/quangdm/finvi/internal/log"
	"github.com/quangdm/finvi/internal/models"
)

type cacheEntry struct {
	quotes    []models.Quote
	fetchedAt time.Time
}

// CachedProvider wraps a provider with a TTL cache. A failed refresh falls
// back to the last successful response, so a flaky upstream degrades to
// stale quotes instead of errors.
type CachedProvider struct {
	upstream Provider
	ttl      time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewCached(upstream Provider, ttl time.Duration, logger *log.Logger) *CachedProvider {
	return &CachedProvider{
		upstream: upstream,
		ttl:      ttl,
		logger:   logger,
		entries:  make(map[string]cacheEntry),
	}
}

func (p *CachedProvider) Name() string { return p.upstream.Name() }

func (p *CachedProvider) Class() models.AssetClass { return p.upstream.Class() }

func (p *CachedProvider) Quotes(ctx context.Context) ([]models.Quote, error) {
	return p.fetch(ctx, "board", func() ([]models.Quote, error) {
		return p.upstream.Quotes(ctx)
	})
}

func (p *CachedProvider) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	quotes, err := p.fetch(ctx, "symbol:"+strings.ToUpper(symbol), func() ([]models.Quote, error) {
		q, err := p.upstream.Quote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return []models.Quote{q}, nil
	})
	if err != nil {
		return models.Quote{}, err
	}
	return quotes[0], nil
}

func (p *CachedProvider) fetch(ctx context.Context, key string, load func() ([]models.Quote, error)) ([]models.Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cached, ok := p.entries[key]
	if ok && time.Since(cached.fetchedAt) < p.ttl {
		return cached.quotes, nil
	}

	quotes, err := load()
	if err != nil {
		// expired data beats no data
		if ok {
			p.logger.Warn("refresh failed, serving stale quotes",
				"provider", p.upstream.Name(), "key", key, "error", err)
			return cached.quotes, nil
		}
		return nil, err
	}

	p.entries[key] = cacheEntry{quotes: quotes, fetchedAt: time.Now()}
	return quotes, nil
}
