package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/models"
)

const coinGeckoBoardSize = 10

// CoinGeckoProvider quotes cryptocurrencies from the CoinGecko free tier.
type CoinGeckoProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewCoinGecko(baseURL string) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *CoinGeckoProvider) Name() string { return "CoinGecko" }

func (p *CoinGeckoProvider) Class() models.AssetClass { return models.AssetClassCrypto }

// coinIDs maps common ticker symbols to CoinGecko coin ids.
var coinIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"USDT": "tether",
	"BNB":  "binancecoin",
	"SOL":  "solana",
	"XRP":  "ripple",
	"DOGE": "dogecoin",
	"ADA":  "cardano",
	"AVAX": "avalanche-2",
	"DOT":  "polkadot",
	"LINK": "chainlink",
	"LTC":  "litecoin",
}

func coinID(symbol string) string {
	if id, ok := coinIDs[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

type cgCoinMarket struct {
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	TotalVolume              float64 `json:"total_volume"`
	High24h                  float64 `json:"high_24h"`
	Low24h                   float64 `json:"low_24h"`
	PriceChange24h           float64 `json:"price_change_24h"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

type cgCoinDetail struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		High24h                  map[string]float64 `json:"high_24h"`
		Low24h                   map[string]float64 `json:"low_24h"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		PriceChange24h           float64            `json:"price_change_24h"`
		PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
	} `json:"market_data"`
}

// Quotes returns the top coins by market capitalization.
func (p *CoinGeckoProvider) Quotes(ctx context.Context) ([]models.Quote, error) {
	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=false&price_change_percentage=24h",
		p.baseURL, coinGeckoBoardSize)

	var coins []cgCoinMarket
	if err := p.getJSON(ctx, url, &coins); err != nil {
		return nil, err
	}

	now := time.Now()
	quotes := make([]models.Quote, 0, len(coins))
	for _, coin := range coins {
		quotes = append(quotes, models.Quote{
			Symbol:           strings.ToUpper(coin.Symbol),
			Name:             coin.Name,
			Class:            models.AssetClassCrypto,
			Currency:         "USD",
			Price:            decimal.NewFromFloat(coin.CurrentPrice),
			Change24h:        decimal.NewFromFloat(coin.PriceChange24h),
			ChangePercent24h: decimal.NewFromFloat(coin.PriceChangePercentage24h),
			High24h:          decimal.NewFromFloat(coin.High24h),
			Low24h:           decimal.NewFromFloat(coin.Low24h),
			MarketCap:        decimal.NewFromFloat(coin.MarketCap),
			Volume24h:        decimal.NewFromFloat(coin.TotalVolume),
			UpdatedAt:        now,
		})
	}
	return quotes, nil
}

func (p *CoinGeckoProvider) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	url := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&community_data=false&developer_data=false",
		p.baseURL, coinID(symbol))

	var coin cgCoinDetail
	if err := p.getJSON(ctx, url, &coin); err != nil {
		return models.Quote{}, err
	}

	return models.Quote{
		Symbol:           strings.ToUpper(coin.Symbol),
		Name:             coin.Name,
		Class:            models.AssetClassCrypto,
		Currency:         "USD",
		Price:            decimal.NewFromFloat(coin.MarketData.CurrentPrice["usd"]),
		Change24h:        decimal.NewFromFloat(coin.MarketData.PriceChange24h),
		ChangePercent24h: decimal.NewFromFloat(coin.MarketData.PriceChangePercentage24h),
		High24h:          decimal.NewFromFloat(coin.MarketData.High24h["usd"]),
		Low24h:           decimal.NewFromFloat(coin.MarketData.Low24h["usd"]),
		MarketCap:        decimal.NewFromFloat(coin.MarketData.MarketCap["usd"]),
		Volume24h:        decimal.NewFromFloat(coin.MarketData.TotalVolume["usd"]),
		UpdatedAt:        time.Now(),
	}, nil
}

func (p *CoinGeckoProvider) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrUnknownSymbol
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
