package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan is money lent out. Paying it off is modeled as deletion, not a
// status flag.
type Loan struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate float64         `json:"interestRate"` // annual percent
	MaturityDate time.Time       `json:"maturityDate"`
}

type LoanCreate struct {
	Name         string          `json:"name" binding:"required"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate float64         `json:"interestRate"`
	MaturityDate time.Time       `json:"maturityDate" binding:"required"`
}

// Debt is money owed. Settled debts are deleted.
type Debt struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Amount         decimal.Decimal  `json:"amount"`
	InterestRate   *float64         `json:"interestRate,omitempty"`
	MinimumPayment *decimal.Decimal `json:"minimumPayment,omitempty"`
	DueDate        time.Time        `json:"dueDate"`
}

type DebtCreate struct {
	Name           string           `json:"name" binding:"required"`
	Amount         decimal.Decimal  `json:"amount"`
	InterestRate   *float64         `json:"interestRate"`
	MinimumPayment *decimal.Decimal `json:"minimumPayment"`
	DueDate        time.Time        `json:"dueDate" binding:"required"`
}
