package finance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/models"
)

func dayLabel(t time.Time) string {
	return t.UTC().Format("02/01")
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("Thg %d", int(t.UTC().Month()))
}

// Report aggregates the transaction log over [from, to] (whole days,
// inclusive) into one of the four report shapes.
func (s *Store) Report(reportType models.ReportType, from, to time.Time) (models.ReportData, error) {
	if !reportType.Valid() {
		return models.ReportData{}, invalid("type", fmt.Errorf("unknown report type %q", reportType))
	}

	start := startOfDayUTC(from)
	end := startOfDayUTC(to).AddDate(0, 0, 1) // exclusive

	s.mu.Lock()
	transactions := make([]models.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	budgets := make([]budgetRecord, len(s.budgets))
	copy(budgets, s.budgets)
	s.mu.Unlock()

	var inPeriod []models.Transaction
	for _, tx := range transactions {
		d := tx.Date.UTC()
		if !d.Before(start) && d.Before(end) {
			inPeriod = append(inPeriod, tx)
		}
	}

	data := models.ReportData{Total: decimal.Zero}

	switch reportType {
	case models.ReportExpense, models.ReportIncome:
		txType := models.TransactionTypeExpense
		if reportType == models.ReportIncome {
			txType = models.TransactionTypeIncome
		}
		var relevant []models.Transaction
		for _, tx := range inPeriod {
			if tx.Type == txType {
				relevant = append(relevant, tx)
			}
		}
		data.Total = sumAmounts(relevant)
		data.ByCategory = groupByCategory(relevant)
		data.Trend = dailyTrend(relevant)

	case models.ReportBudget:
		spent := make(map[string]decimal.Decimal)
		for _, tx := range inPeriod {
			if tx.Type == models.TransactionTypeExpense {
				spent[tx.Category] = spent[tx.Category].Add(tx.Amount)
			}
		}
		for _, b := range budgets {
			comparison := models.BudgetComparison{
				ID:       b.ID.String(),
				Category: b.Category,
				Amount:   b.Amount,
				Spent:    spent[b.Category],
				Status:   models.BudgetOnTrack,
			}
			if comparison.Spent.GreaterThan(b.Amount) {
				comparison.Status = models.BudgetOverspent
			}
			data.BudgetComparison = append(data.BudgetComparison, comparison)
		}

	case models.ReportExpenseAllocation:
		var expenses []models.Transaction
		for _, tx := range inPeriod {
			if tx.Type == models.TransactionTypeExpense {
				expenses = append(expenses, tx)
			}
		}
		data.Total = sumAmounts(expenses)
		data.ByCategory = groupByCategory(expenses)
		data.MonthlyComparison, data.ComparisonMonths = monthlyComparison(transactions, to)
	}

	return data, nil
}

func sumAmounts(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

func groupByCategory(transactions []models.Transaction) []models.CategoryAmount {
	byCategory := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
	}
	out := make([]models.CategoryAmount, 0, len(byCategory))
	for name, value := range byCategory {
		out = append(out, models.CategoryAmount{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value.Equal(out[j].Value) {
			return out[i].Name < out[j].Name
		}
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}

func dailyTrend(transactions []models.Transaction) []models.TrendPoint {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, tx := range transactions {
		day := startOfDayUTC(tx.Date)
		byDay[day] = byDay[day].Add(tx.Amount)
	}
	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]models.TrendPoint, 0, len(days))
	for _, day := range days {
		out = append(out, models.TrendPoint{Date: dayLabel(day), Amount: byDay[day]})
	}
	return out
}

// monthlyComparison builds the top-5 category comparison over the three
// calendar months ending at the month of end.
func monthlyComparison(transactions []models.Transaction, end time.Time) ([]models.MonthlyComparisonRow, []string) {
	end = end.UTC()

	type month struct {
		label      string
		start, end time.Time
	}
	months := make([]month, 0, 3)
	for i := 2; i >= 0; i-- {
		first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		months = append(months, month{
			label: monthLabel(first),
			start: first,
			end:   first.AddDate(0, 1, 0),
		})
	}

	spending := make(map[string]map[string]decimal.Decimal) // label -> category -> sum
	totals := make(map[string]decimal.Decimal)
	for _, m := range months {
		spending[m.label] = make(map[string]decimal.Decimal)
	}
	for _, tx := range transactions {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		d := tx.Date.UTC()
		for _, m := range months {
			if !d.Before(m.start) && d.Before(m.end) {
				spending[m.label][tx.Category] = spending[m.label][tx.Category].Add(tx.Amount)
				totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
			}
		}
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if totals[categories[i]].Equal(totals[categories[j]]) {
			return categories[i] < categories[j]
		}
		return totals[categories[i]].GreaterThan(totals[categories[j]])
	})
	if len(categories) > 5 {
		categories = categories[:5]
	}

	labels := make([]string, 0, len(months))
	for _, m := range months {
		labels = append(labels, m.label)
	}

	rows := make([]models.MonthlyComparisonRow, 0, len(categories))
	for _, category := range categories {
		amounts := make(map[string]decimal.Decimal, len(labels))
		for _, label := range labels {
			amounts[label] = spending[label][category]
		}
		rows = append(rows, models.MonthlyComparisonRow{Category: category, Amounts: amounts})
	}
	return rows, labels
}

// Dashboard derives the landing-page summary: lifetime totals, a 7-day
// income/expense series, the expense allocation and the health score.
func (s *Store) Dashboard(now time.Time) models.DashboardSummary {
	s.mu.Lock()
	transactions := make([]models.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	budgets := make([]models.Budget, 0, len(s.budgets))
	for _, record := range s.budgets {
		budgets = append(budgets, s.deriveBudget(record))
	}
	debts := make([]models.Debt, len(s.debts))
	copy(debts, s.debts)
	s.mu.Unlock()

	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		if tx.Type == models.TransactionTypeIncome {
			income = income.Add(tx.Amount)
		} else if tx.Type == models.TransactionTypeExpense {
			expense = expense.Add(tx.Amount)
		}
	}

	score, status := healthScore(income, expense, budgets, debts)

	// Last 7 days, zero-filled, oldest first.
	daily := make([]models.DailyPoint, 0, 7)
	index := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		day := startOfDayUTC(now.AddDate(0, 0, -i))
		index[dayLabel(day)] = len(daily)
		daily = append(daily, models.DailyPoint{Date: dayLabel(day), Income: decimal.Zero, Expense: decimal.Zero})
	}
	for _, tx := range transactions {
		i, ok := index[dayLabel(tx.Date)]
		if !ok {
			continue
		}
		if tx.Type == models.TransactionTypeIncome {
			daily[i].Income = daily[i].Income.Add(tx.Amount)
		} else {
			daily[i].Expense = daily[i].Expense.Add(tx.Amount)
		}
	}

	var expenses []models.Transaction
	for _, tx := range transactions {
		if tx.Type == models.TransactionTypeExpense {
			expenses = append(expenses, tx)
		}
	}

	return models.DashboardSummary{
		TotalIncome:       income,
		TotalExpense:      expense,
		Balance:           income.Sub(expense),
		Daily:             daily,
		ExpenseByCategory: groupByCategory(expenses),
		HealthScore:       score,
		HealthStatus:      status,
	}
}

// healthScore scores savings rate (40 points, full marks at a 20% rate),
// budget headroom (30 points, full marks with no budgets set) and
// debt-to-income (30 points, zero at a 40% ratio).
func healthScore(income, expense decimal.Decimal, budgets []models.Budget, debts []models.Debt) (int, models.HealthStatus) {
	incomeF := income.InexactFloat64()
	savings := income.Sub(expense).InexactFloat64()

	savingsRate := 0.0
	if incomeF > 0 {
		savingsRate = savings / incomeF
	}
	savingsScore := math.Min(1, math.Max(0, savingsRate)/0.2) * 40

	totalBudget, totalSpent := decimal.Zero, decimal.Zero
	for _, b := range budgets {
		totalBudget = totalBudget.Add(b.Amount)
		totalSpent = totalSpent.Add(b.Spent)
	}
	budgetScore := 30.0
	if totalBudget.GreaterThan(decimal.Zero) {
		headroom := totalBudget.Sub(totalSpent).InexactFloat64() / totalBudget.InexactFloat64()
		budgetScore = math.Max(0, headroom) * 30
	}

	totalDebt := decimal.Zero
	for _, d := range debts {
		totalDebt = totalDebt.Add(d.Amount)
	}
	debtRatio := 0.0
	if incomeF > 0 {
		debtRatio = totalDebt.InexactFloat64() / incomeF
	}
	debtScore := math.Max(0, 1-math.Min(1, debtRatio/0.4)) * 30

	score := int(math.Round(savingsScore + budgetScore + debtScore))

	status := models.HealthNeedsImprovement
	switch {
	case score >= 80:
		status = models.HealthExcellent
	case score >= 50:
		status = models.HealthGood
	}
	return score, status
}
