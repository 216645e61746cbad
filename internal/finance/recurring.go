package finance

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/models"
)

func validateRecurringInput(input models.RecurringCreate) error {
	if err := validateTransactionInput(input.Type, input.Amount); err != nil {
		return err
	}
	if !input.Frequency.Valid() {
		return invalid("frequency", ErrInvalidFrequency)
	}
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return invalid("endDate", ErrEndBeforeStart)
	}
	return nil
}

func (s *Store) AddRecurring(ctx context.Context, input models.RecurringCreate) (models.RecurringTransaction, error) {
	if err := validateRecurringInput(input); err != nil {
		return models.RecurringTransaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryKnown(input.Category, input.Type) {
		return models.RecurringTransaction{}, invalid("category", ErrUnknownCategory)
	}

	rec := models.RecurringTransaction{
		ID:          uuid.New(),
		Type:        input.Type,
		Category:    input.Category,
		Amount:      input.Amount,
		Description: input.Description,
		StartDate:   input.StartDate,
		Frequency:   input.Frequency,
		EndDate:     input.EndDate,
	}
	next := append(slices.Clone(s.recurring), rec)
	if err := s.save(ctx, slotRecurring, next); err != nil {
		return models.RecurringTransaction{}, err
	}
	s.recurring = next
	rec.NextDueDate = NextDueDate(rec)
	return rec, nil
}

// UpdateRecurring replaces the template with the same id. LastPostedDate is
// carried over from the stored version; only PostDue advances it.
func (s *Store) UpdateRecurring(ctx context.Context, id uuid.UUID, input models.RecurringCreate) (models.RecurringTransaction, error) {
	if err := validateRecurringInput(input); err != nil {
		return models.RecurringTransaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryKnown(input.Category, input.Type) {
		return models.RecurringTransaction{}, invalid("category", ErrUnknownCategory)
	}

	idx := slices.IndexFunc(s.recurring, func(r models.RecurringTransaction) bool { return r.ID == id })
	if idx < 0 {
		return models.RecurringTransaction{}, ErrNotFound
	}

	rec := s.recurring[idx]
	rec.Type = input.Type
	rec.Category = input.Category
	rec.Amount = input.Amount
	rec.Description = input.Description
	rec.StartDate = input.StartDate
	rec.Frequency = input.Frequency
	rec.EndDate = input.EndDate

	next := slices.Clone(s.recurring)
	next[idx] = rec
	if err := s.save(ctx, slotRecurring, next); err != nil {
		return models.RecurringTransaction{}, err
	}
	s.recurring = next
	rec.NextDueDate = NextDueDate(rec)
	return rec, nil
}

func (s *Store) DeleteRecurring(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.recurring, func(r models.RecurringTransaction) bool { return r.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.recurring), idx, idx+1)
	if err := s.save(ctx, slotRecurring, next); err != nil {
		return err
	}
	s.recurring = next
	return nil
}

// Recurring returns every template, sorted ascending by next due date.
func (s *Store) Recurring() []models.RecurringTransaction {
	s.mu.Lock()
	recs := slices.Clone(s.recurring)
	s.mu.Unlock()

	for i := range recs {
		recs[i].NextDueDate = NextDueDate(recs[i])
	}
	slices.SortStableFunc(recs, func(a, b models.RecurringTransaction) int {
		return a.NextDueDate.Compare(b.NextDueDate)
	})
	return recs
}

// NextDueDate computes when a template should next produce a transaction.
// A template that has never posted is due exactly on its start date;
// otherwise the due date is one period after the last posting, normalized
// to the start of that day in UTC.
func NextDueDate(rec models.RecurringTransaction) time.Time {
	if rec.LastPostedDate == nil {
		return startOfDayUTC(rec.StartDate)
	}

	next := startOfDayUTC(*rec.LastPostedDate)
	switch rec.Frequency {
	case models.FrequencyWeekly:
		next = next.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		next = next.AddDate(0, 1, 0)
	case models.FrequencyYearly:
		next = next.AddDate(1, 0, 0)
	}
	return next
}

// Due reports whether the template's next due date has been reached.
func Due(rec models.RecurringTransaction, now time.Time) bool {
	return !NextDueDate(rec).After(now)
}

// PostDue turns one due occurrence of a template into a concrete
// transaction dated at the computed due date, and advances the template's
// LastPostedDate to that date. Both collections are persisted in a single
// atomic slot write, so a crash can neither lose the occurrence nor post
// it twice.
func (s *Store) PostDue(ctx context.Context, id uuid.UUID, now time.Time) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.recurring, func(r models.RecurringTransaction) bool { return r.ID == id })
	if idx < 0 {
		return models.Transaction{}, ErrNotFound
	}

	rec := s.recurring[idx]
	due := NextDueDate(rec)
	if due.After(now) {
		return models.Transaction{}, invalid("id", ErrNotDue)
	}

	tx := models.Transaction{
		ID:          uuid.New(),
		Type:        rec.Type,
		Category:    rec.Category,
		Amount:      rec.Amount,
		Description: rec.Description,
		Date:        due,
	}

	nextTransactions := append(slices.Clone(s.transactions), tx)
	nextRecurring := slices.Clone(s.recurring)
	posted := due
	nextRecurring[idx].LastPostedDate = &posted

	if err := s.saveMany(ctx, map[string]any{
		slotTransactions: nextTransactions,
		slotRecurring:    nextRecurring,
	}); err != nil {
		return models.Transaction{}, err
	}

	s.transactions = nextTransactions
	s.recurring = nextRecurring
	return tx, nil
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
