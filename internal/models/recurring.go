package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecurringFrequency string

const (
	FrequencyWeekly  RecurringFrequency = "weekly"
	FrequencyMonthly RecurringFrequency = "monthly"
	FrequencyYearly  RecurringFrequency = "yearly"
)

func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringTransaction is a template that periodically spawns concrete
// transactions. It never appears in totals itself.
type RecurringTransaction struct {
	ID             uuid.UUID          `json:"id"`
	Type           TransactionType    `json:"type"`
	Category       string             `json:"category"`
	Amount         decimal.Decimal    `json:"amount"`
	Description    string             `json:"description"`
	StartDate      time.Time          `json:"startDate"`
	Frequency      RecurringFrequency `json:"frequency"`
	EndDate        *time.Time         `json:"endDate,omitempty"`
	LastPostedDate *time.Time         `json:"lastPostedDate,omitempty"`

	// NextDueDate is derived on read, never persisted.
	NextDueDate time.Time `json:"nextDueDate"`
}

type RecurringCreate struct {
	Type        TransactionType    `json:"type" binding:"required"`
	Category    string             `json:"category" binding:"required"`
	Amount      decimal.Decimal    `json:"amount"`
	Description string             `json:"description"`
	StartDate   time.Time          `json:"startDate" binding:"required"`
	Frequency   RecurringFrequency `json:"frequency" binding:"required"`
	EndDate     *time.Time         `json:"endDate"`
}
