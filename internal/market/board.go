package market

import (
	"context"
	"fmt"
	"slices"

	"github.com/quangdm/finvi/internal/models"
)

// Board routes quote requests to the provider covering each asset class.
type Board struct {
	providers map[models.AssetClass]Provider
}

func NewBoard(providers ...Provider) *Board {
	b := &Board{providers: make(map[models.AssetClass]Provider, len(providers))}
	for _, p := range providers {
		b.providers[p.Class()] = p
	}
	return b
}

// Classes lists the asset classes with a registered provider, sorted for a
// stable response shape.
func (b *Board) Classes() []models.AssetClass {
	classes := make([]models.AssetClass, 0, len(b.providers))
	for class := range b.providers {
		classes = append(classes, class)
	}
	slices.Sort(classes)
	return classes
}

func (b *Board) provider(class models.AssetClass) (Provider, error) {
	p, ok := b.providers[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedClass, class)
	}
	return p, nil
}

func (b *Board) Quotes(ctx context.Context, class models.AssetClass) ([]models.Quote, error) {
	p, err := b.provider(class)
	if err != nil {
		return nil, err
	}
	return p.Quotes(ctx)
}

func (b *Board) Quote(ctx context.Context, class models.AssetClass, symbol string) (models.Quote, error) {
	p, err := b.provider(class)
	if err != nil {
		return models.Quote{}, err
	}
	return p.Quote(ctx, symbol)
}
