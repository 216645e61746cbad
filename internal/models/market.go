package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetClass names a market segment the app can quote.
type AssetClass string

const (
	AssetClassCrypto AssetClass = "crypto"
	AssetClassStock  AssetClass = "stock"
)

func (c AssetClass) Valid() bool {
	return c == AssetClassCrypto || c == AssetClassStock
}

// Quote is a point-in-time market price for one listed asset.
type Quote struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Class            AssetClass      `json:"class"`
	Currency         string          `json:"currency"`
	Price            decimal.Decimal `json:"price"`
	Change24h        decimal.Decimal `json:"change24h"`
	ChangePercent24h decimal.Decimal `json:"changePercent24h"`
	High24h          decimal.Decimal `json:"high24h"`
	Low24h           decimal.Decimal `json:"low24h"`
	MarketCap        decimal.Decimal `json:"marketCap"`
	Volume24h        decimal.Decimal `json:"volume24h"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Holding is one position in the user's investment portfolio. Only the
// purchase side is stored; the current price comes from a live quote.
type Holding struct {
	ID           uuid.UUID       `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Class        AssetClass      `json:"class"`
	Quantity     decimal.Decimal `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	Currency     string          `json:"currency"`
	PurchaseDate time.Time       `json:"purchaseDate"`
}

type HoldingCreate struct {
	Symbol       string          `json:"symbol" binding:"required"`
	Name         string          `json:"name"`
	Class        AssetClass      `json:"class" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	Currency     string          `json:"currency"`
	PurchaseDate time.Time       `json:"purchaseDate"`
}

// HoldingView is a holding priced with the latest available quote.
type HoldingView struct {
	Holding
	CurrentPrice    decimal.Decimal `json:"currentPrice"`
	MarketValue     decimal.Decimal `json:"marketValue"`
	Cost            decimal.Decimal `json:"cost"`
	GainLoss        decimal.Decimal `json:"gainLoss"`
	GainLossPercent float64         `json:"gainLossPercent"`
}

// Portfolio is the derived valuation of every holding. It is computed on
// read and never persisted.
type Portfolio struct {
	Holdings             []HoldingView   `json:"holdings"`
	TotalValue           decimal.Decimal `json:"totalValue"`
	TotalCost            decimal.Decimal `json:"totalCost"`
	TotalGainLoss        decimal.Decimal `json:"totalGainLoss"`
	TotalGainLossPercent float64         `json:"totalGainLossPercent"`
}
