package market

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/models"
)

// VNStockProvider serves a curated board of the most traded Vietnamese
// blue chips. HOSE has no free public quote API, so the board carries
// reference prices in VND; the listing itself is what matters for
// portfolio entry and valuation fallbacks.
type VNStockProvider struct {
	board []models.Quote
}

func NewVNStockBoard() *VNStockProvider {
	return &VNStockProvider{board: vnStockBoard()}
}

func (p *VNStockProvider) Name() string { return "HOSE" }

func (p *VNStockProvider) Class() models.AssetClass { return models.AssetClassStock }

func (p *VNStockProvider) Quotes(ctx context.Context) ([]models.Quote, error) {
	quotes := make([]models.Quote, len(p.board))
	copy(quotes, p.board)
	return quotes, nil
}

func (p *VNStockProvider) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	for _, q := range p.board {
		if strings.EqualFold(q.Symbol, symbol) {
			return q, nil
		}
	}
	return models.Quote{}, ErrUnknownSymbol
}

func vnStock(symbol, name string, price, change, marketCap, volume int64) models.Quote {
	p := decimal.NewFromInt(price)
	c := decimal.NewFromInt(change)
	var pct decimal.Decimal
	if prev := p.Sub(c); !prev.IsZero() {
		pct = c.Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return models.Quote{
		Symbol:           symbol,
		Name:             name,
		Class:            models.AssetClassStock,
		Currency:         "VND",
		Price:            p,
		Change24h:        c,
		ChangePercent24h: pct,
		High24h:          p.Add(c.Abs()),
		Low24h:           p.Sub(c.Abs()),
		MarketCap:        decimal.NewFromInt(marketCap),
		Volume24h:        decimal.NewFromInt(volume),
		UpdatedAt:        time.Now(),
	}
}

func vnStockBoard() []models.Quote {
	return []models.Quote{
		vnStock("HPG", "Tập đoàn Hòa Phát", 28300, 350, 165_000_000_000_000, 800_000_000_000),
		vnStock("FPT", "Tập đoàn FPT", 135000, 1200, 171_000_000_000_000, 500_000_000_000),
		vnStock("VIC", "Tập đoàn Vingroup", 42800, -800, 163_000_000_000_000, 300_000_000_000),
		vnStock("VNM", "Vinamilk", 67500, 1500, 141_000_000_000_000, 250_000_000_000),
		vnStock("VCB", "Vietcombank", 98200, 2100, 287_000_000_000_000, 120_000_000_000),
		vnStock("MSN", "Tập đoàn Masan", 125000, -3500, 89_000_000_000_000, 85_000_000_000),
	}
}
