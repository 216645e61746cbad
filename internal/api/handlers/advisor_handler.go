package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/ai"
	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/models"
)

// AdvisorService is the slice of the AI client the advisor endpoints need.
type AdvisorService interface {
	Advise(ctx context.Context, question string, snapshot any) (string, error)
	ScanBill(ctx context.Context, imageB64, mimeType string, categories []string) (ai.BillScan, error)
	ForecastCashFlow(ctx context.Context, transactions []models.Transaction, now time.Time) (ai.Forecast, error)
}

type AdvisorHandler struct {
	stores  *finance.Manager
	advisor AdvisorService
}

func NewAdvisorHandler(stores *finance.Manager, advisor AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{stores: stores, advisor: advisor}
}

// Advise answers a free-form question against a snapshot of the user's
// finances. The AI never mutates any collection.
func (h *AdvisorHandler) Advise(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	snapshot := gin.H{
		"transactions": store.Transactions(),
		"budgets":      store.Budgets(),
		"goals":        store.Goals(),
		"loans":        store.Loans(),
		"debts":        store.Debts(),
	}

	advice, err := h.advisor.Advise(c.Request.Context(), input.Question, snapshot)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "", gin.H{"advice": advice})
}

// ScanBill extracts a transaction draft from a receipt image. The draft is
// returned to the client; nothing is stored until the user confirms it.
func (h *AdvisorHandler) ScanBill(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input struct {
		Image    string `json:"image" binding:"required"`
		MimeType string `json:"mimeType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	categories := store.Categories(models.TransactionTypeExpense)
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}

	scan, err := h.advisor.ScanBill(c.Request.Context(), input.Image, input.MimeType, names)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "", scan)
}

func (h *AdvisorHandler) Forecast(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	forecast, err := h.advisor.ForecastCashFlow(c.Request.Context(), store.Transactions(), time.Now())
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "", forecast)
}
