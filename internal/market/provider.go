// Package market serves quotes for the asset classes the app tracks and
// prices the user's portfolio with them. Each asset class is backed by one
// provider; a caching wrapper keeps recent responses and falls back to
// stale data when the upstream source fails.
package market

import (
	"context"
	"errors"

	"github.com/quangdm/finvi/internal/models"
)

var (
	// ErrUnknownSymbol is returned when a provider has no listing for the
	// requested symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrUnsupportedClass is returned when no provider covers the asset class.
	ErrUnsupportedClass = errors.New("unsupported asset class")
	// ErrUnavailable wraps transport and upstream failures.
	ErrUnavailable = errors.New("market data source unavailable")
)

// Provider supplies quotes for one asset class.
type Provider interface {
	Name() string
	Class() models.AssetClass

	// Quotes returns the provider's board: the most traded assets of its
	// class, ordered the way the provider ranks them.
	Quotes(ctx context.Context) ([]models.Quote, error)

	// Quote returns the latest quote for one symbol.
	Quote(ctx context.Context, symbol string) (models.Quote, error)
}
