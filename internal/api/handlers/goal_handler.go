package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/models"
)

type GoalHandler struct {
	stores *finance.Manager
}

func NewGoalHandler(stores *finance.Manager) *GoalHandler {
	return &GoalHandler{stores: stores}
}

func (h *GoalHandler) Create(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input models.GoalCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	goal, err := store.AddGoal(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "goal created", goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}
	ok(c, http.StatusOK, "", store.Goals())
}

func (h *GoalHandler) Update(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid goal id"))
		return
	}

	var update models.GoalUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err)
		return
	}

	goal, err := store.UpdateGoal(c.Request.Context(), id, update)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "goal updated", goal)
}

// AddFunds moves money into a goal; the saved amount never exceeds the
// target.
func (h *GoalHandler) AddFunds(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid goal id"))
		return
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	goal, err := store.AddGoalFunds(c.Request.Context(), id, input.Amount)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "funds added", goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid goal id"))
		return
	}

	if err := store.DeleteGoal(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "goal deleted", nil)
}
