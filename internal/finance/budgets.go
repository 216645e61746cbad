package finance

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/models"
)

// budgetRecord is the persisted shape of a budget. Spent is deliberately
// absent: it is derived from the transaction log on every read, so edits to
// transactions never require a budget migration.
type budgetRecord struct {
	ID       uuid.UUID       `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// AddBudget creates the single budget for a category.
func (s *Store) AddBudget(ctx context.Context, input models.BudgetCreate) (models.Budget, error) {
	if input.Amount.IsNegative() {
		return models.Budget{}, invalid("amount", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.budgets {
		if strings.EqualFold(b.Category, input.Category) {
			return models.Budget{}, invalid("category", ErrDuplicateBudget)
		}
	}

	record := budgetRecord{ID: uuid.New(), Category: input.Category, Amount: input.Amount}
	next := append(slices.Clone(s.budgets), record)
	if err := s.save(ctx, slotBudgets, next); err != nil {
		return models.Budget{}, err
	}
	s.budgets = next
	return s.deriveBudget(record), nil
}

func (s *Store) UpdateBudget(ctx context.Context, id uuid.UUID, update models.BudgetUpdate) (models.Budget, error) {
	if update.Amount != nil && update.Amount.IsNegative() {
		return models.Budget{}, invalid("amount", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.budgets, func(b budgetRecord) bool { return b.ID == id })
	if idx < 0 {
		return models.Budget{}, ErrNotFound
	}

	record := s.budgets[idx]
	if update.Category != nil {
		for i, b := range s.budgets {
			if i != idx && strings.EqualFold(b.Category, *update.Category) {
				return models.Budget{}, invalid("category", ErrDuplicateBudget)
			}
		}
		record.Category = *update.Category
	}
	if update.Amount != nil {
		record.Amount = *update.Amount
	}

	next := slices.Clone(s.budgets)
	next[idx] = record
	if err := s.save(ctx, slotBudgets, next); err != nil {
		return models.Budget{}, err
	}
	s.budgets = next
	return s.deriveBudget(record), nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.budgets, func(b budgetRecord) bool { return b.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.budgets), idx, idx+1)
	if err := s.save(ctx, slotBudgets, next); err != nil {
		return err
	}
	s.budgets = next
	return nil
}

// Budgets returns every budget with its derived spend. Spent is the
// lifetime sum of expense transactions in the budget's category; the
// period-restricted figure lives in the budget report.
func (s *Store) Budgets() []models.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := make([]models.Budget, 0, len(s.budgets))
	for _, record := range s.budgets {
		budgets = append(budgets, s.deriveBudget(record))
	}
	return budgets
}

func (s *Store) Budget(id uuid.UUID) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.budgets {
		if record.ID == id {
			return s.deriveBudget(record), nil
		}
	}
	return models.Budget{}, ErrNotFound
}

// deriveBudget computes Spent, Remaining and SpentPercent from the
// transaction log. Caller must hold s.mu.
func (s *Store) deriveBudget(record budgetRecord) models.Budget {
	spent := decimal.Zero
	for _, tx := range s.transactions {
		if tx.Type == models.TransactionTypeExpense && tx.Category == record.Category {
			spent = spent.Add(tx.Amount)
		}
	}

	budget := models.Budget{
		ID:        record.ID,
		Category:  record.Category,
		Amount:    record.Amount,
		Spent:     spent,
		Remaining: record.Amount.Sub(spent),
	}
	if record.Amount.GreaterThan(decimal.Zero) {
		budget.SpentPercent = spent.Div(record.Amount).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return budget
}
