package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/finvi/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency Currency
		want     string
	}{
		{"0", CurrencyVND, "0 VND"},
		{"1500", CurrencyVND, "1.500 VND"},
		{"1500000", CurrencyVND, "1.500.000 VND"},
		{"-1500000", CurrencyVND, "-1.500.000 VND"},
		{"1234.5", CurrencyVND, "1.234,5 VND"},
		{"0", CurrencyUSD, "$0.00"},
		{"1234.56", CurrencyUSD, "$1,234.56"},
		{"1234.5", CurrencyUSD, "$1,234.50"},
		{"-1234.5", CurrencyUSD, "-$1,234.50"},
		{"1000000", CurrencyUSD, "$1,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(dec(tt.amount), tt.currency))
		})
	}
}

func TestSetCurrencyOnlyAffectsFormatting(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	tx, err := store.AddTransaction(ctx, models.TransactionCreate{
		Type:     models.TransactionTypeExpense,
		Category: "Ăn uống",
		Amount:   dec("150000"),
		Date:     time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, "150.000 VND", store.FormatCurrency(tx.Amount))

	require.NoError(t, store.SetCurrency(ctx, CurrencyUSD))
	assert.Equal(t, "$150,000.00", store.FormatCurrency(tx.Amount))

	// stored amount untouched by the preference change
	got, err := store.Transaction(tx.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(tx.Amount))
}

func TestSetCurrencyRejectsUnknown(t *testing.T) {
	store, _ := newTestStore(t)
	err := store.SetCurrency(context.Background(), "EUR")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
	assert.Equal(t, CurrencyVND, store.CurrencyPref())
}
