package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/models"
)

// DebtHandler serves both sides of the ledger: loans (money lent out) and
// debts (money owed).
type DebtHandler struct {
	stores *finance.Manager
}

func NewDebtHandler(stores *finance.Manager) *DebtHandler {
	return &DebtHandler{stores: stores}
}

func (h *DebtHandler) CreateLoan(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input models.LoanCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	loan, err := store.AddLoan(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "loan created", loan)
}

func (h *DebtHandler) ListLoans(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}
	ok(c, http.StatusOK, "", store.Loans())
}

func (h *DebtHandler) DeleteLoan(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid loan id"))
		return
	}

	if err := store.DeleteLoan(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "loan deleted", nil)
}

func (h *DebtHandler) CreateDebt(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input models.DebtCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	debt, err := store.AddDebt(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "debt created", debt)
}

func (h *DebtHandler) ListDebts(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}
	ok(c, http.StatusOK, "", store.Debts())
}

func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid debt id"))
		return
	}

	if err := store.DeleteDebt(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "debt deleted", nil)
}
