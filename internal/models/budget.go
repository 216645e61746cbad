package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget caps spending for one expense category. Spent, Remaining and
// SpentPercent are recomputed from the transaction log on every read and
// are never persisted.
type Budget struct {
	ID       uuid.UUID       `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`

	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	SpentPercent float64         `json:"spentPercent"`
}

type BudgetCreate struct {
	Category string          `json:"category" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

type BudgetUpdate struct {
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
}
