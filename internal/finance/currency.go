package finance

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyVND Currency = "VND"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool {
	return c == CurrencyVND || c == CurrencyUSD
}

// CurrencyPref returns the stored display-currency preference.
func (s *Store) CurrencyPref() Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetCurrency stores the display-currency preference. Stored amounts are
// never converted or mutated; the preference only affects formatting.
func (s *Store) SetCurrency(ctx context.Context, currency Currency) error {
	if !currency.Valid() {
		return invalid("currency", ErrInvalidCurrency)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, slotCurrency, currency); err != nil {
		return err
	}
	s.currency = currency
	return nil
}

// FormatCurrency renders an amount using the stored preference. It is a
// pure function of (amount, preference).
func (s *Store) FormatCurrency(amount decimal.Decimal) string {
	return FormatAmount(amount, s.CurrencyPref())
}

// FormatAmount renders an amount in the given currency: VND with vi-VN
// digit grouping and a "VND" suffix, USD in en-US currency notation.
func FormatAmount(amount decimal.Decimal, currency Currency) string {
	if currency == CurrencyUSD {
		formatted := groupDigits(amount.Abs().StringFixed(2), ",")
		if amount.IsNegative() {
			return "-$" + formatted
		}
		return "$" + formatted
	}

	// vi-VN groups thousands with dots and separates decimals with a comma.
	formatted := groupDigits(amount.Abs().String(), ".")
	formatted = strings.Replace(formatted, "#", ",", 1)
	if amount.IsNegative() {
		formatted = "-" + formatted
	}
	return formatted + " VND"
}

// groupDigits inserts sep every three digits of the integer part. The
// decimal point, if any, is preserved for USD and handed back as '#' for
// the caller to localize.
func groupDigits(s, sep string) string {
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	if fracPart == "" {
		return b.String()
	}
	if sep == "," {
		return b.String() + "." + fracPart
	}
	return b.String() + "#" + fracPart
}
