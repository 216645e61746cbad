package finance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/finvi/internal/models"
	"github.com/quangdm/finvi/internal/storage"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	start := date(2024, 1, 15)
	posted := start

	tests := []struct {
		name       string
		frequency  models.RecurringFrequency
		lastPosted *time.Time
		want       time.Time
	}{
		{"never posted is due on start", models.FrequencyMonthly, nil, date(2024, 1, 15)},
		{"weekly advances 7 days", models.FrequencyWeekly, &posted, date(2024, 1, 22)},
		{"monthly advances one month", models.FrequencyMonthly, &posted, date(2024, 2, 15)},
		{"yearly advances one year", models.FrequencyYearly, &posted, date(2025, 1, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.RecurringTransaction{
				StartDate:      start,
				Frequency:      tt.frequency,
				LastPostedDate: tt.lastPosted,
			}
			assert.Equal(t, tt.want, NextDueDate(rec))
		})
	}
}

func TestNextDueDateNormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	posted := time.Date(2024, 1, 15, 23, 30, 0, 0, loc)
	rec := models.RecurringTransaction{
		StartDate:      date(2024, 1, 1),
		Frequency:      models.FrequencyWeekly,
		LastPostedDate: &posted,
	}
	// 23:30 ICT is 16:30 UTC on the same day, so the base day is Jan 15.
	assert.Equal(t, date(2024, 1, 22), NextDueDate(rec))
}

func TestRecurringEndDateValidation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	end := date(2024, 1, 10)
	_, err := store.AddRecurring(ctx, models.RecurringCreate{
		Type:      models.TransactionTypeExpense,
		Category:  "Nhà ở",
		Amount:    amount(5000000),
		StartDate: date(2024, 1, 15),
		Frequency: models.FrequencyMonthly,
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, ErrEndBeforeStart)
	assert.Empty(t, store.Recurring())
}

func TestRecurringRequiresKnownCategory(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.AddRecurring(ctx, models.RecurringCreate{
		Type:      models.TransactionTypeExpense,
		Category:  "Danh mục không tồn tại",
		Amount:    amount(100000),
		StartDate: date(2024, 1, 15),
		Frequency: models.FrequencyMonthly,
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Empty(t, store.Recurring())

	rec, err := store.AddRecurring(ctx, models.RecurringCreate{
		Type:      models.TransactionTypeExpense,
		Category:  "Nhà ở",
		Amount:    amount(100000),
		StartDate: date(2024, 1, 15),
		Frequency: models.FrequencyMonthly,
	})
	require.NoError(t, err)

	_, err = store.UpdateRecurring(ctx, rec.ID, models.RecurringCreate{
		Type:      models.TransactionTypeExpense,
		Category:  "Bịa đặt",
		Amount:    amount(100000),
		StartDate: date(2024, 1, 15),
		Frequency: models.FrequencyMonthly,
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestPostDueCreatesTransactionAndAdvances(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	rec, err := store.AddRecurring(ctx, models.RecurringCreate{
		Type:        models.TransactionTypeExpense,
		Category:    "Nhà ở",
		Amount:      amount(5000000),
		Description: "Tiền thuê nhà",
		StartDate:   date(2024, 1, 15),
		Frequency:   models.FrequencyMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 15), rec.NextDueDate)

	tx, err := store.PostDue(ctx, rec.ID, date(2024, 1, 20))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 15), tx.Date, "transaction dated at the due date, not at posting time")
	assert.Equal(t, "Tiền thuê nhà", tx.Description)

	recs := store.Recurring()
	require.Len(t, recs, 1)
	assert.Equal(t, date(2024, 2, 15), recs[0].NextDueDate)

	// not due again until the next period
	_, err = store.PostDue(ctx, rec.ID, date(2024, 1, 21))
	assert.ErrorIs(t, err, ErrNotDue)
	assert.Len(t, store.Transactions(), 1)
}

func TestPostDueAtomicOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	failing := &failingStore{SlotStore: storage.NewMemoryStore()}
	store, err := Open(ctx, failing)
	require.NoError(t, err)

	rec, err := store.AddRecurring(ctx, models.RecurringCreate{
		Type:      models.TransactionTypeIncome,
		Category:  "Lương",
		Amount:    amount(20000000),
		StartDate: date(2024, 1, 1),
		Frequency: models.FrequencyMonthly,
	})
	require.NoError(t, err)

	failing.failWrites = true
	_, err = store.PostDue(ctx, rec.ID, date(2024, 1, 2))
	assert.ErrorIs(t, err, errDiskFull)

	assert.Empty(t, store.Transactions())
	recs := store.Recurring()
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].LastPostedDate)
}

func TestRecurringSortedByNextDue(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.AddRecurring(ctx, models.RecurringCreate{
		Type: models.TransactionTypeExpense, Category: "Nhà ở",
		Amount: amount(1), StartDate: date(2024, 3, 1), Frequency: models.FrequencyMonthly,
	})
	require.NoError(t, err)
	_, err = store.AddRecurring(ctx, models.RecurringCreate{
		Type: models.TransactionTypeExpense, Category: "Tiện ích",
		Amount: amount(1), StartDate: date(2024, 2, 1), Frequency: models.FrequencyMonthly,
	})
	require.NoError(t, err)

	recs := store.Recurring()
	require.Len(t, recs, 2)
	assert.Equal(t, "Tiện ích", recs[0].Category)
	assert.Equal(t, "Nhà ở", recs[1].Category)
}
