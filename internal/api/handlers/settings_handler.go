package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/finance"
)

type SettingsHandler struct {
	stores *finance.Manager
}

func NewSettingsHandler(stores *finance.Manager) *SettingsHandler {
	return &SettingsHandler{stores: stores}
}

func (h *SettingsHandler) GetCurrency(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}
	ok(c, http.StatusOK, "", gin.H{"currency": store.CurrencyPref()})
}

// SetCurrency changes the display currency. Stored amounts are never
// converted.
func (h *SettingsHandler) SetCurrency(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input struct {
		Currency finance.Currency `json:"currency" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := store.SetCurrency(c.Request.Context(), input.Currency); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "currency updated", gin.H{"currency": input.Currency})
}
