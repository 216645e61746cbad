package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/finvi/internal/ai"
	"github.com/quangdm/finvi/internal/auth"
	"github.com/quangdm/finvi/internal/config"
	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/log"
	"github.com/quangdm/finvi/internal/market"
	"github.com/quangdm/finvi/internal/models"
	"github.com/quangdm/finvi/internal/storage"
)

type fakeAdvisor struct {
	advice string
	err    error
}

func (f *fakeAdvisor) Advise(ctx context.Context, question string, snapshot any) (string, error) {
	return f.advice, f.err
}

func (f *fakeAdvisor) ScanBill(ctx context.Context, imageB64, mimeType string, categories []string) (ai.BillScan, error) {
	return ai.BillScan{}, f.err
}

func (f *fakeAdvisor) ForecastCashFlow(ctx context.Context, transactions []models.Transaction, now time.Time) (ai.Forecast, error) {
	return ai.Forecast{Analysis: "ổn định"}, f.err
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T, advisor *fakeAdvisor) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slots := storage.NewMemoryStore()
	authService, err := auth.NewService(context.Background(), slots, "test-secret", time.Hour)
	require.NoError(t, err)

	cfg := &config.Config{Env: "test"}
	board := market.NewBoard(market.NewVNStockBoard())
	return NewServer(cfg, authService, finance.NewManager(slots), advisor, board, log.New(slog.LevelError))
}

func doJSON(t *testing.T, server *Server, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, req)

	var env envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	}
	return recorder, env
}

func registerUser(t *testing.T, server *Server, username string) string {
	t.Helper()
	recorder, env := doJSON(t, server, http.MethodPost, "/api/auth/register", "", models.UserRegistration{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var response models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &response))
	return response.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})
	registerUser(t, server, "quang")

	recorder, env := doJSON(t, server, http.MethodPost, "/api/auth/login", "", models.UserLogin{
		Username: "quang", Password: "hunter22",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, env.Success)

	recorder, env = doJSON(t, server, http.MethodPost, "/api/auth/login", "", models.UserLogin{
		Username: "quang", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})

	recorder, _ := doJSON(t, server, http.MethodGet, "/api/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Token abc")
	recorder2 := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder2, req)
	assert.Equal(t, http.StatusUnauthorized, recorder2.Code)
}

func TestTransactionCRUDAndPagination(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})
	token := registerUser(t, server, "quang")

	for i := 0; i < 25; i++ {
		recorder, _ := doJSON(t, server, http.MethodPost, "/api/transactions", token, models.TransactionCreate{
			Type:     models.TransactionTypeExpense,
			Category: "Ăn uống",
			Amount:   decimal.NewFromInt(int64(1000 * (i + 1))),
			Date:     time.Date(2024, 3, 1+i%28, 0, 0, 0, 0, time.UTC),
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder, env := doJSON(t, server, http.MethodGet, "/api/transactions?page=2&limit=10", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var list models.TransactionList
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Transactions, 10)
	assert.Equal(t, 2, list.Pagination.Current)
	assert.Equal(t, 3, list.Pagination.Pages)
	assert.Equal(t, 25, list.Pagination.Total)

	// update one
	target := list.Transactions[0]
	recorder, env = doJSON(t, server, http.MethodPut, "/api/transactions/"+target.ID.String(), token, models.TransactionCreate{
		Type:     models.TransactionTypeExpense,
		Category: "Khác",
		Amount:   decimal.NewFromInt(777),
		Date:     target.Date,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Khác", updated.Category)

	// delete it
	recorder, _ = doJSON(t, server, http.MethodDelete, "/api/transactions/"+target.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = doJSON(t, server, http.MethodDelete, "/api/transactions/"+target.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestValidationErrorsMapTo400(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})
	token := registerUser(t, server, "quang")

	recorder, env := doJSON(t, server, http.MethodPost, "/api/transactions", token, models.TransactionCreate{
		Type:     models.TransactionTypeExpense,
		Category: "Ăn uống",
		Amount:   decimal.NewFromInt(-5),
		Date:     time.Now(),
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "amount")
}

func TestPerUserIsolation(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})
	alice := registerUser(t, server, "alice")
	bob := registerUser(t, server, "bob")

	recorder, _ := doJSON(t, server, http.MethodPost, "/api/transactions", alice, models.TransactionCreate{
		Type:     models.TransactionTypeExpense,
		Category: "Ăn uống",
		Amount:   decimal.NewFromInt(1000),
		Date:     time.Now(),
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	_, env := doJSON(t, server, http.MethodGet, "/api/transactions", bob, nil)
	var list models.TransactionList
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list.Transactions)
}

func TestGoalFundsEndpoint(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})
	token := registerUser(t, server, "quang")

	recorder, env := doJSON(t, server, http.MethodPost, "/api/goals", token, models.GoalCreate{
		Name:         "Quỹ khẩn cấp",
		TargetAmount: decimal.NewFromInt(1000000),
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var goal models.Goal
	require.NoError(t, json.Unmarshal(env.Data, &goal))

	recorder, env = doJSON(t, server, http.MethodPost, fmt.Sprintf("/api/goals/%s/funds", goal.ID), token,
		map[string]any{"amount": 1500000})
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, json.Unmarshal(env.Data, &goal))
	assert.True(t, goal.CurrentAmount.Equal(decimal.NewFromInt(1000000)), "clamped to target")
}

func TestAdvisorFailureMapsTo502(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{err: ai.ErrUnavailable})
	token := registerUser(t, server, "quang")

	recorder, env := doJSON(t, server, http.MethodPost, "/api/advisor", token,
		map[string]string{"question": "Tôi nên làm gì?"})
	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.False(t, env.Success)
}

func TestAdvisorSuccess(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{advice: "Hãy tiết kiệm 20% thu nhập."})
	token := registerUser(t, server, "quang")

	recorder, env := doJSON(t, server, http.MethodPost, "/api/advisor", token,
		map[string]string{"question": "Tôi nên làm gì?"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var data struct {
		Advice string `json:"advice"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Hãy tiết kiệm 20% thu nhập.", data.Advice)
}

func TestMarketQuotesEndpoint(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})
	token := registerUser(t, server, "quang")

	recorder, env := doJSON(t, server, http.MethodGet, "/api/market/quotes?class=stock", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var quotes []models.Quote
	require.NoError(t, json.Unmarshal(env.Data, &quotes))
	assert.NotEmpty(t, quotes)
	assert.Equal(t, models.AssetClassStock, quotes[0].Class)

	recorder, _ = doJSON(t, server, http.MethodGet, "/api/market/quotes?class=bonds", token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder, env = doJSON(t, server, http.MethodGet, "/api/market/quotes/FPT?class=stock", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var quote models.Quote
	require.NoError(t, json.Unmarshal(env.Data, &quote))
	assert.Equal(t, "FPT", quote.Symbol)

	recorder, _ = doJSON(t, server, http.MethodGet, "/api/market/quotes/ZZZ?class=stock", token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestPortfolioEndpoints(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})
	token := registerUser(t, server, "quang")

	recorder, env := doJSON(t, server, http.MethodPost, "/api/portfolio/holdings", token, models.HoldingCreate{
		Symbol:       "VIC",
		Name:         "Tập đoàn Vingroup",
		Class:        models.AssetClassStock,
		Quantity:     decimal.NewFromInt(1000),
		AveragePrice: decimal.NewFromInt(44000),
		Currency:     "VND",
		PurchaseDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var holding models.Holding
	require.NoError(t, json.Unmarshal(env.Data, &holding))

	recorder, env = doJSON(t, server, http.MethodGet, "/api/portfolio", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var portfolio models.Portfolio
	require.NoError(t, json.Unmarshal(env.Data, &portfolio))
	require.Len(t, portfolio.Holdings, 1)
	// priced with the board quote, not the stored average
	assert.True(t, portfolio.Holdings[0].CurrentPrice.Equal(decimal.NewFromInt(42800)),
		"current price %s", portfolio.Holdings[0].CurrentPrice)
	assert.True(t, portfolio.TotalCost.Equal(decimal.NewFromInt(44_000_000)))
	assert.True(t, portfolio.TotalGainLoss.IsNegative())

	recorder, _ = doJSON(t, server, http.MethodPost, "/api/portfolio/holdings", token, models.HoldingCreate{
		Symbol: "VIC", Class: models.AssetClassStock, Quantity: decimal.Zero,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder, _ = doJSON(t, server, http.MethodDelete, "/api/portfolio/holdings/"+holding.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = doJSON(t, server, http.MethodDelete, "/api/portfolio/holdings/"+holding.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCurrencySettings(t *testing.T) {
	server := newTestServer(t, &fakeAdvisor{})
	token := registerUser(t, server, "quang")

	recorder, env := doJSON(t, server, http.MethodGet, "/api/settings/currency", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, string(env.Data), "VND")

	recorder, _ = doJSON(t, server, http.MethodPut, "/api/settings/currency", token,
		map[string]string{"currency": "USD"})
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = doJSON(t, server, http.MethodPut, "/api/settings/currency", token,
		map[string]string{"currency": "EUR"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
