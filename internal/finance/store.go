// Package finance owns the canonical financial collections: transactions,
// budgets, goals, recurring transactions, loans, debts, portfolio holdings,
// category sets and the currency preference. Every collection lives in one
// persistence slot; aggregates (budget spend, reports, health score,
// portfolio value) are derived on read and never stored.
package finance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/quangdm/finvi/internal/models"
	"github.com/quangdm/finvi/internal/storage"
)

const (
	slotTransactions      = "transactions"
	slotBudgets           = "budgets"
	slotGoals             = "goals"
	slotRecurring         = "recurringTransactions"
	slotLoans             = "loans"
	slotDebts             = "debts"
	slotHoldings          = "holdings"
	slotExpenseCategories = "expenseCategories"
	slotIncomeCategories  = "incomeCategories"
	slotCurrency          = "currency"
)

// Store holds every collection in memory and writes the owning slot back
// synchronously after each mutation. Validation runs before any state
// change, and a failed slot write leaves the in-memory state untouched, so
// a rejected or failed operation never leaves partial data behind.
//
// Two Store instances opened over the same slots each hold an independent
// copy loaded at Open time; the last writer wins. That mirrors the
// single-user, single-device assumption of the original deployment and is
// an accepted limitation.
type Store struct {
	mu    sync.Mutex
	slots storage.SlotStore

	transactions      []models.Transaction
	budgets           []budgetRecord
	goals             []models.Goal
	recurring         []models.RecurringTransaction
	loans             []models.Loan
	debts             []models.Debt
	holdings          []models.Holding
	expenseCategories []models.Category
	incomeCategories  []models.Category
	currency          Currency
}

// Open loads every collection from its slot, falling back to the seeded
// defaults for collections that have never been written.
func Open(ctx context.Context, slots storage.SlotStore) (*Store, error) {
	s := &Store{slots: slots}

	if err := errors.Join(
		loadSlot(ctx, slots, slotTransactions, &s.transactions, nil),
		loadSlot(ctx, slots, slotBudgets, &s.budgets, nil),
		loadSlot(ctx, slots, slotGoals, &s.goals, nil),
		loadSlot(ctx, slots, slotRecurring, &s.recurring, nil),
		loadSlot(ctx, slots, slotLoans, &s.loans, nil),
		loadSlot(ctx, slots, slotDebts, &s.debts, nil),
		loadSlot(ctx, slots, slotHoldings, &s.holdings, nil),
		loadSlot(ctx, slots, slotExpenseCategories, &s.expenseCategories, models.DefaultExpenseCategories()),
		loadSlot(ctx, slots, slotIncomeCategories, &s.incomeCategories, models.DefaultIncomeCategories()),
		loadSlot(ctx, slots, slotCurrency, &s.currency, CurrencyVND),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func loadSlot[T any](ctx context.Context, slots storage.SlotStore, key string, dst *T, fallback T) error {
	raw, err := slots.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		*dst = fallback
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// save writes one collection to its slot. Callers assign the new in-memory
// value only after save succeeds.
func (s *Store) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.slots.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// saveMany writes several collections in one atomic slot transaction. Used
// by operations that touch more than one collection, such as posting a due
// recurring transaction or cascading a category rename.
func (s *Store) saveMany(ctx context.Context, values map[string]any) error {
	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		encoded[key] = raw
	}
	if err := s.slots.SetMany(ctx, encoded); err != nil {
		return fmt.Errorf("persist slots: %w", err)
	}
	return nil
}
