package finance

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/models"
)

func (s *Store) AddLoan(ctx context.Context, input models.LoanCreate) (models.Loan, error) {
	if input.Principal.IsNegative() {
		return models.Loan{}, invalid("principal", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loan := models.Loan{
		ID:           uuid.New(),
		Name:         input.Name,
		Principal:    input.Principal,
		InterestRate: input.InterestRate,
		MaturityDate: input.MaturityDate,
	}
	next := append(slices.Clone(s.loans), loan)
	if err := s.save(ctx, slotLoans, next); err != nil {
		return models.Loan{}, err
	}
	s.loans = next
	return loan, nil
}

// DeleteLoan removes a loan; paying one off is modeled as deletion.
func (s *Store) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.loans, func(l models.Loan) bool { return l.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.loans), idx, idx+1)
	if err := s.save(ctx, slotLoans, next); err != nil {
		return err
	}
	s.loans = next
	return nil
}

func (s *Store) Loans() []models.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.loans)
}

func (s *Store) AddDebt(ctx context.Context, input models.DebtCreate) (models.Debt, error) {
	if input.Amount.IsNegative() {
		return models.Debt{}, invalid("amount", ErrNegativeAmount)
	}
	if input.MinimumPayment != nil && input.MinimumPayment.IsNegative() {
		return models.Debt{}, invalid("minimumPayment", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	debt := models.Debt{
		ID:             uuid.New(),
		Name:           input.Name,
		Amount:         input.Amount,
		InterestRate:   input.InterestRate,
		MinimumPayment: input.MinimumPayment,
		DueDate:        input.DueDate,
	}
	next := append(slices.Clone(s.debts), debt)
	if err := s.save(ctx, slotDebts, next); err != nil {
		return models.Debt{}, err
	}
	s.debts = next
	return debt, nil
}

// DeleteDebt removes a debt; settling one is modeled as deletion.
func (s *Store) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.debts, func(d models.Debt) bool { return d.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.debts), idx, idx+1)
	if err := s.save(ctx, slotDebts, next); err != nil {
		return err
	}
	s.debts = next
	return nil
}

func (s *Store) Debts() []models.Debt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.debts)
}
