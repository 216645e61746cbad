package finance

import (
	"context"
	"slices"
	"strings"

	"github.com/quangdm/finvi/internal/models"
)

func categorySlot(txType models.TransactionType) string {
	if txType == models.TransactionTypeIncome {
		return slotIncomeCategories
	}
	return slotExpenseCategories
}

func (s *Store) categorySet(txType models.TransactionType) *[]models.Category {
	if txType == models.TransactionTypeIncome {
		return &s.incomeCategories
	}
	return &s.expenseCategories
}

// categoryKnown reports whether name exists in the set matching txType.
// Caller must hold s.mu.
func (s *Store) categoryKnown(name string, txType models.TransactionType) bool {
	for _, c := range *s.categorySet(txType) {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Categories returns the category set for one transaction type.
func (s *Store) Categories(txType models.TransactionType) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(*s.categorySet(txType))
}

// CategoryByName looks a category up across both sets.
func (s *Store) CategoryByName(name string) (models.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, set := range [][]models.Category{s.expenseCategories, s.incomeCategories} {
		for _, c := range set {
			if c.Name == name {
				return c, true
			}
		}
	}
	return models.Category{}, false
}

// AddCategory appends to the matching set. Names are unique within a type,
// compared case-insensitively.
func (s *Store) AddCategory(ctx context.Context, category models.Category, txType models.TransactionType) (models.Category, error) {
	if !txType.Valid() {
		return models.Category{}, invalid("type", ErrInvalidType)
	}
	category.Name = strings.TrimSpace(category.Name)
	category.Icon = models.ParseIcon(string(category.Icon))

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.categorySet(txType)
	for _, c := range *set {
		if strings.EqualFold(c.Name, category.Name) {
			return models.Category{}, invalid("name", ErrDuplicateCategory)
		}
	}

	next := append(slices.Clone(*set), category)
	if err := s.save(ctx, categorySlot(txType), next); err != nil {
		return models.Category{}, err
	}
	*set = next
	return category, nil
}

// UpdateCategory replaces oldName in the matching set. When the name
// changes, the rename cascades to every transaction and recurring
// transaction of that type, and to budgets for expense categories. All
// affected collections are persisted in one atomic slot write.
func (s *Store) UpdateCategory(ctx context.Context, oldName string, category models.Category, txType models.TransactionType) (models.Category, error) {
	if !txType.Valid() {
		return models.Category{}, invalid("type", ErrInvalidType)
	}
	category.Name = strings.TrimSpace(category.Name)
	category.Icon = models.ParseIcon(string(category.Icon))

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.categorySet(txType)
	idx := slices.IndexFunc(*set, func(c models.Category) bool { return c.Name == oldName })
	if idx < 0 {
		return models.Category{}, ErrNotFound
	}
	renamed := category.Name != oldName
	if renamed {
		for i, c := range *set {
			if i != idx && strings.EqualFold(c.Name, category.Name) {
				return models.Category{}, invalid("name", ErrDuplicateCategory)
			}
		}
	}

	nextSet := slices.Clone(*set)
	nextSet[idx] = category

	if !renamed {
		if err := s.save(ctx, categorySlot(txType), nextSet); err != nil {
			return models.Category{}, err
		}
		*set = nextSet
		return category, nil
	}

	nextTransactions := slices.Clone(s.transactions)
	for i, tx := range nextTransactions {
		if tx.Type == txType && tx.Category == oldName {
			nextTransactions[i].Category = category.Name
		}
	}
	nextRecurring := slices.Clone(s.recurring)
	for i, r := range nextRecurring {
		if r.Type == txType && r.Category == oldName {
			nextRecurring[i].Category = category.Name
		}
	}

	values := map[string]any{
		categorySlot(txType): nextSet,
		slotTransactions:     nextTransactions,
		slotRecurring:        nextRecurring,
	}

	nextBudgets := s.budgets
	if txType == models.TransactionTypeExpense {
		nextBudgets = slices.Clone(s.budgets)
		for i, b := range nextBudgets {
			if b.Category == oldName {
				nextBudgets[i].Category = category.Name
			}
		}
		values[slotBudgets] = nextBudgets
	}

	if err := s.saveMany(ctx, values); err != nil {
		return models.Category{}, err
	}

	*set = nextSet
	s.transactions = nextTransactions
	s.recurring = nextRecurring
	s.budgets = nextBudgets
	return category, nil
}

// DeleteCategory removes a category from the matching set. Protected names
// and categories still referenced anywhere are refused; a refused delete
// changes nothing.
func (s *Store) DeleteCategory(ctx context.Context, name string, txType models.TransactionType) error {
	if !txType.Valid() {
		return invalid("type", ErrInvalidType)
	}
	if name == models.ProtectedCategoryName {
		return invalid("name", ErrCategoryProtected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.categorySet(txType)
	idx := slices.IndexFunc(*set, func(c models.Category) bool { return c.Name == name })
	if idx < 0 {
		return ErrNotFound
	}

	if s.categoryReferenced(name) {
		return invalid("name", ErrCategoryInUse)
	}

	next := slices.Delete(slices.Clone(*set), idx, idx+1)
	if err := s.save(ctx, categorySlot(txType), next); err != nil {
		return err
	}
	*set = next
	return nil
}

// categoryReferenced reports whether any transaction, recurring
// transaction or budget still uses the name. Caller must hold s.mu.
func (s *Store) categoryReferenced(name string) bool {
	for _, tx := range s.transactions {
		if tx.Category == name {
			return true
		}
	}
	for _, r := range s.recurring {
		if r.Category == name {
			return true
		}
	}
	for _, b := range s.budgets {
		if b.Category == name {
			return true
		}
	}
	return false
}
