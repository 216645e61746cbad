package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/models"
)

// QuoteBoard is the slice of the market board the HTTP layer needs.
type QuoteBoard interface {
	Classes() []models.AssetClass
	Quotes(ctx context.Context, class models.AssetClass) ([]models.Quote, error)
	Quote(ctx context.Context, class models.AssetClass, symbol string) (models.Quote, error)
}

type MarketHandler struct {
	board QuoteBoard
}

func NewMarketHandler(board QuoteBoard) *MarketHandler {
	return &MarketHandler{board: board}
}

// Quotes returns the board for one asset class, or every board grouped by
// class when no class is given.
func (h *MarketHandler) Quotes(c *gin.Context) {
	ctx := c.Request.Context()

	if class := c.Query("class"); class != "" {
		quotes, err := h.board.Quotes(ctx, models.AssetClass(class))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, http.StatusOK, "", quotes)
		return
	}

	boards := gin.H{}
	for _, class := range h.board.Classes() {
		quotes, err := h.board.Quotes(ctx, class)
		if err != nil {
			fail(c, err)
			return
		}
		boards[string(class)] = quotes
	}
	ok(c, http.StatusOK, "", boards)
}

func (h *MarketHandler) Quote(c *gin.Context) {
	class := models.AssetClass(c.Query("class"))

	quote, err := h.board.Quote(c.Request.Context(), class, c.Param("symbol"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "", quote)
}
