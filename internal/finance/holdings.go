package finance

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/models"
)

func validateHoldingInput(input models.HoldingCreate) error {
	if !input.Class.Valid() {
		return invalid("class", ErrInvalidAssetClass)
	}
	if !input.Quantity.IsPositive() {
		return invalid("quantity", ErrInvalidQuantity)
	}
	if input.AveragePrice.IsNegative() {
		return invalid("averagePrice", ErrNegativeAmount)
	}
	return nil
}

func newHolding(input models.HoldingCreate) models.Holding {
	return models.Holding{
		ID:           uuid.New(),
		Symbol:       strings.ToUpper(strings.TrimSpace(input.Symbol)),
		Name:         input.Name,
		Class:        input.Class,
		Quantity:     input.Quantity,
		AveragePrice: input.AveragePrice,
		Currency:     input.Currency,
		PurchaseDate: input.PurchaseDate,
	}
}

// AddHolding records a new portfolio position.
func (s *Store) AddHolding(ctx context.Context, input models.HoldingCreate) (models.Holding, error) {
	if err := validateHoldingInput(input); err != nil {
		return models.Holding{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	holding := newHolding(input)
	next := append(slices.Clone(s.holdings), holding)
	if err := s.save(ctx, slotHoldings, next); err != nil {
		return models.Holding{}, err
	}
	s.holdings = next
	return holding, nil
}

// UpdateHolding replaces the stored position with the same id.
func (s *Store) UpdateHolding(ctx context.Context, id uuid.UUID, input models.HoldingCreate) (models.Holding, error) {
	if err := validateHoldingInput(input); err != nil {
		return models.Holding{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.holdings, func(h models.Holding) bool { return h.ID == id })
	if idx < 0 {
		return models.Holding{}, ErrNotFound
	}

	holding := newHolding(input)
	holding.ID = id

	next := slices.Clone(s.holdings)
	next[idx] = holding
	if err := s.save(ctx, slotHoldings, next); err != nil {
		return models.Holding{}, err
	}
	s.holdings = next
	return holding, nil
}

func (s *Store) DeleteHolding(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.holdings, func(h models.Holding) bool { return h.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.holdings), idx, idx+1)
	if err := s.save(ctx, slotHoldings, next); err != nil {
		return err
	}
	s.holdings = next
	return nil
}

// Holdings returns a copy of every portfolio position.
func (s *Store) Holdings() []models.Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.holdings)
}
