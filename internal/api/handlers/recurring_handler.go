package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/models"
)

type RecurringHandler struct {
	stores *finance.Manager
}

func NewRecurringHandler(stores *finance.Manager) *RecurringHandler {
	return &RecurringHandler{stores: stores}
}

func (h *RecurringHandler) Create(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input models.RecurringCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := store.AddRecurring(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "recurring transaction created", rec)
}

func (h *RecurringHandler) List(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}
	ok(c, http.StatusOK, "", store.Recurring())
}

func (h *RecurringHandler) Update(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid recurring transaction id"))
		return
	}

	var input models.RecurringCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := store.UpdateRecurring(c.Request.Context(), id, input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "recurring transaction updated", rec)
}

// Post materializes one due occurrence into a concrete transaction.
func (h *RecurringHandler) Post(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid recurring transaction id"))
		return
	}

	tx, err := store.PostDue(c.Request.Context(), id, time.Now())
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "recurring transaction posted", tx)
}

func (h *RecurringHandler) Delete(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid recurring transaction id"))
		return
	}

	if err := store.DeleteRecurring(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "recurring transaction deleted", nil)
}
