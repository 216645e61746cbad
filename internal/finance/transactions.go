package finance

import (
	"context"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/models"
)

func validateTransactionInput(txType models.TransactionType, amount decimal.Decimal) error {
	if !txType.Valid() {
		return invalid("type", ErrInvalidType)
	}
	if amount.IsNegative() {
		return invalid("amount", ErrNegativeAmount)
	}
	return nil
}

func newTransaction(input models.TransactionCreate) models.Transaction {
	return models.Transaction{
		ID:           uuid.New(),
		Type:         input.Type,
		Category:     input.Category,
		Amount:       input.Amount,
		Description:  input.Description,
		Date:         input.Date,
		ReceiptImage: input.ReceiptImage,
		Priority:     input.Priority,
	}
}

// AddTransaction appends a transaction with a fresh id. The category must
// already exist in the set matching the type. Budgets are not touched:
// their spend is derived on read.
func (s *Store) AddTransaction(ctx context.Context, input models.TransactionCreate) (models.Transaction, error) {
	if err := validateTransactionInput(input.Type, input.Amount); err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryKnown(input.Category, input.Type) {
		return models.Transaction{}, invalid("category", ErrUnknownCategory)
	}

	tx := newTransaction(input)
	next := append(slices.Clone(s.transactions), tx)
	if err := s.save(ctx, slotTransactions, next); err != nil {
		return models.Transaction{}, err
	}
	s.transactions = next
	return tx, nil
}

// AddTransactions is the bulk variant: one id per item, a single persist.
func (s *Store) AddTransactions(ctx context.Context, inputs []models.TransactionCreate) ([]models.Transaction, error) {
	for _, input := range inputs {
		if err := validateTransactionInput(input.Type, input.Amount); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, input := range inputs {
		if !s.categoryKnown(input.Category, input.Type) {
			return nil, invalid("category", ErrUnknownCategory)
		}
	}

	added := make([]models.Transaction, 0, len(inputs))
	next := slices.Clone(s.transactions)
	for _, input := range inputs {
		tx := newTransaction(input)
		added = append(added, tx)
		next = append(next, tx)
	}
	if err := s.save(ctx, slotTransactions, next); err != nil {
		return nil, err
	}
	s.transactions = next
	return added, nil
}

// UpdateTransaction replaces the stored transaction with the same id.
func (s *Store) UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if err := validateTransactionInput(tx.Type, tx.Amount); err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryKnown(tx.Category, tx.Type) {
		return models.Transaction{}, invalid("category", ErrUnknownCategory)
	}

	idx := slices.IndexFunc(s.transactions, func(t models.Transaction) bool { return t.ID == tx.ID })
	if idx < 0 {
		return models.Transaction{}, ErrNotFound
	}

	next := slices.Clone(s.transactions)
	next[idx] = tx
	if err := s.save(ctx, slotTransactions, next); err != nil {
		return models.Transaction{}, err
	}
	s.transactions = next
	return tx, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.transactions, func(t models.Transaction) bool { return t.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.transactions), idx, idx+1)
	if err := s.save(ctx, slotTransactions, next); err != nil {
		return err
	}
	s.transactions = next
	return nil
}

// Transactions returns a copy of the full transaction log.
func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

func (s *Store) Transaction(id uuid.UUID) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return models.Transaction{}, ErrNotFound
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListTransactions filters, sorts and paginates the transaction log.
func (s *Store) ListTransactions(filter models.TransactionFilter) models.TransactionList {
	s.mu.Lock()
	matched := make([]models.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, tx)
	}
	s.mu.Unlock()

	asc := filter.Order == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		if filter.Sort == "amount" {
			if asc {
				return matched[i].Amount.LessThan(matched[j].Amount)
			}
			return matched[j].Amount.LessThan(matched[i].Amount)
		}
		if asc {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[j].Date.Before(matched[i].Date)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	total := len(matched)
	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return models.TransactionList{
		Transactions: matched[start:end],
		Pagination: models.Pagination{
			Current: page,
			Pages:   pages,
			Total:   total,
			Limit:   limit,
		},
	}
}
