package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	// ReceiptImage holds an embedded base64 data URL, if the user attached one.
	ReceiptImage string   `json:"receiptImage,omitempty"`
	Priority     Priority `json:"priority,omitempty"`
}

type TransactionCreate struct {
	Type         TransactionType `json:"type" binding:"required"`
	Category     string          `json:"category" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date" binding:"required"`
	ReceiptImage string          `json:"receiptImage"`
	Priority     Priority        `json:"priority"`
}

type TransactionFilter struct {
	Type      *TransactionType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
	Sort      string // date or amount
	Order     string // asc or desc
}

type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Limit   int `json:"limit"`
}

type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}
