package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/market"
	"github.com/quangdm/finvi/internal/models"
)

type PortfolioHandler struct {
	stores *finance.Manager
	board  QuoteBoard
}

func NewPortfolioHandler(stores *finance.Manager, board QuoteBoard) *PortfolioHandler {
	return &PortfolioHandler{stores: stores, board: board}
}

// Get values the user's holdings with live quotes. A board that cannot be
// fetched is skipped: those holdings are valued at their recorded average
// price, so the portfolio stays readable while a data source is down.
func (h *PortfolioHandler) Get(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	holdings := store.Holdings()

	classes := make(map[models.AssetClass]bool)
	for _, holding := range holdings {
		classes[holding.Class] = true
	}

	quotes := make(map[string]models.Quote)
	for class := range classes {
		board, err := h.board.Quotes(c.Request.Context(), class)
		if err != nil {
			continue
		}
		for _, q := range board {
			quotes[market.QuoteKey(q.Class, q.Symbol)] = q
		}
	}

	ok(c, http.StatusOK, "", market.Value(holdings, quotes))
}

func (h *PortfolioHandler) CreateHolding(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input models.HoldingCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	holding, err := store.AddHolding(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "holding created", holding)
}

func (h *PortfolioHandler) UpdateHolding(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}

	var input models.HoldingCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	holding, err := store.UpdateHolding(c.Request.Context(), id, input)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "holding updated", holding)
}

func (h *PortfolioHandler) DeleteHolding(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := store.DeleteHolding(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "holding deleted", nil)
}
