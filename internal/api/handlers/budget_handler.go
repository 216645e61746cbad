package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/models"
)

type BudgetHandler struct {
	stores *finance.Manager
}

func NewBudgetHandler(stores *finance.Manager) *BudgetHandler {
	return &BudgetHandler{stores: stores}
}

func (h *BudgetHandler) Create(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input models.BudgetCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	budget, err := store.AddBudget(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "budget created", budget)
}

func (h *BudgetHandler) List(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}
	ok(c, http.StatusOK, "", store.Budgets())
}

func (h *BudgetHandler) Update(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid budget id"))
		return
	}

	var update models.BudgetUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err)
		return
	}

	budget, err := store.UpdateBudget(c.Request.Context(), id, update)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "budget updated", budget)
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid budget id"))
		return
	}

	if err := store.DeleteBudget(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "budget deleted", nil)
}
