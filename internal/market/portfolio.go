package market

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/models"
)

// QuoteKey identifies a quote within a priced-quote map.
func QuoteKey(class models.AssetClass, symbol string) string {
	return string(class) + ":" + strings.ToUpper(symbol)
}

var hundred = decimal.NewFromInt(100)

// Value prices holdings with the given quotes, keyed by QuoteKey. A holding
// without a quote is valued at its recorded average price, so the valuation
// never fails outright when a data source is down.
func Value(holdings []models.Holding, quotes map[string]models.Quote) models.Portfolio {
	portfolio := models.Portfolio{
		Holdings:      make([]models.HoldingView, 0, len(holdings)),
		TotalValue:    decimal.Zero,
		TotalCost:     decimal.Zero,
		TotalGainLoss: decimal.Zero,
	}

	for _, h := range holdings {
		current := h.AveragePrice
		if q, ok := quotes[QuoteKey(h.Class, h.Symbol)]; ok {
			current = q.Price
		}

		view := models.HoldingView{
			Holding:      h,
			CurrentPrice: current,
			MarketValue:  h.Quantity.Mul(current),
			Cost:         h.Quantity.Mul(h.AveragePrice),
		}
		view.GainLoss = view.MarketValue.Sub(view.Cost)
		if !view.Cost.IsZero() {
			view.GainLossPercent, _ = view.GainLoss.Div(view.Cost).Mul(hundred).Float64()
		}

		portfolio.Holdings = append(portfolio.Holdings, view)
		portfolio.TotalValue = portfolio.TotalValue.Add(view.MarketValue)
		portfolio.TotalCost = portfolio.TotalCost.Add(view.Cost)
	}

	portfolio.TotalGainLoss = portfolio.TotalValue.Sub(portfolio.TotalCost)
	if !portfolio.TotalCost.IsZero() {
		portfolio.TotalGainLossPercent, _ = portfolio.TotalGainLoss.Div(portfolio.TotalCost).Mul(hundred).Float64()
	}
	return portfolio
}
