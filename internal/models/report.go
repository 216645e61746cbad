package models

import (
	"github.com/shopspring/decimal"
)

type ReportType string

const (
	ReportExpense           ReportType = "expense"
	ReportIncome            ReportType = "income"
	ReportBudget            ReportType = "budget"
	ReportExpenseAllocation ReportType = "expense-allocation"
)

func (r ReportType) Valid() bool {
	switch r {
	case ReportExpense, ReportIncome, ReportBudget, ReportExpenseAllocation:
		return true
	}
	return false
}

type CategoryAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type TrendPoint struct {
	Date   string          `json:"date"` // dd/MM label
	Amount decimal.Decimal `json:"amount"`
}

type BudgetStatus string

const (
	BudgetOnTrack   BudgetStatus = "on-track"
	BudgetOverspent BudgetStatus = "overspent"
)

// BudgetComparison restricts spend to the report period, unlike the
// lifetime figure on the budget collection itself.
type BudgetComparison struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Spent    decimal.Decimal `json:"spent"`
	Status   BudgetStatus    `json:"status"`
}

type MonthlyComparisonRow struct {
	Category string                     `json:"category"`
	Amounts  map[string]decimal.Decimal `json:"amounts"`
}

type ReportData struct {
	Total             decimal.Decimal        `json:"total"`
	ByCategory        []CategoryAmount       `json:"byCategory"`
	Trend             []TrendPoint           `json:"trend"`
	BudgetComparison  []BudgetComparison     `json:"budgetComparison,omitempty"`
	MonthlyComparison []MonthlyComparisonRow `json:"monthlyComparison,omitempty"`
	ComparisonMonths  []string               `json:"comparisonMonths,omitempty"`
}

type DailyPoint struct {
	Date    string          `json:"date"` // dd/MM label
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type HealthStatus string

const (
	HealthExcellent        HealthStatus = "excellent"
	HealthGood             HealthStatus = "good"
	HealthNeedsImprovement HealthStatus = "needs-improvement"
)

type DashboardSummary struct {
	TotalIncome       decimal.Decimal  `json:"totalIncome"`
	TotalExpense      decimal.Decimal  `json:"totalExpense"`
	Balance           decimal.Decimal  `json:"balance"`
	Daily             []DailyPoint     `json:"daily"`
	ExpenseByCategory []CategoryAmount `json:"expenseByCategory"`
	HealthScore       int              `json:"healthScore"`
	HealthStatus      HealthStatus     `json:"healthStatus"`
}
