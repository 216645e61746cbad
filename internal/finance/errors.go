package finance

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id does not match any entity in the
// addressed collection.
var ErrNotFound = errors.New("not found")

// Validation causes. Every rejected operation leaves all collections
// unchanged.
var (
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrUnknownCategory   = errors.New("category does not exist for this type")
	ErrInvalidFrequency  = errors.New("invalid recurring frequency")
	ErrEndBeforeStart    = errors.New("end date must be after start date")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryProtected = errors.New("category is protected and cannot be deleted")
	ErrCategoryInUse     = errors.New("category is referenced by transactions, recurring transactions or budgets")
	ErrDuplicateBudget   = errors.New("a budget already exists for this category")
	ErrInvalidCurrency   = errors.New("unsupported currency")
	ErrNotDue            = errors.New("recurring transaction is not due")
	ErrInvalidAssetClass = errors.New("invalid asset class")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// ValidationError marks a rejected operation so transports can map it to a
// client error instead of a server fault.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, cause error) error {
	return &ValidationError{Field: field, Err: cause}
}

// IsValidation reports whether err originated from input validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
