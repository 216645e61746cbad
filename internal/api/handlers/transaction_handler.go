package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/models"
)

type TransactionHandler struct {
	stores *finance.Manager
}

func NewTransactionHandler(stores *finance.Manager) *TransactionHandler {
	return &TransactionHandler{stores: stores}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input models.TransactionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	tx, err := store.AddTransaction(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "transaction created", tx)
}

// CreateBulk persists several transactions in one write. All items are
// validated up front; one bad item rejects the whole batch.
func (h *TransactionHandler) CreateBulk(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var inputs []models.TransactionCreate
	if err := c.ShouldBindJSON(&inputs); err != nil {
		badRequest(c, err)
		return
	}
	if len(inputs) == 0 {
		badRequest(c, errors.New("empty transaction list"))
		return
	}

	added, err := store.AddTransactions(c.Request.Context(), inputs)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "transactions created", added)
}

func (h *TransactionHandler) List(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	filter := models.TransactionFilter{
		Category: c.Query("category"),
		Sort:     c.DefaultQuery("sort", "date"),
		Order:    c.DefaultQuery("order", "desc"),
	}

	if txType := c.Query("type"); txType != "" {
		t := models.TransactionType(txType)
		filter.Type = &t
	}
	if startDate := c.Query("startDate"); startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			filter.StartDate = &t
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			filter.EndDate = &t
		}
	}
	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	ok(c, http.StatusOK, "", store.ListTransactions(filter))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid transaction id"))
		return
	}

	var input models.TransactionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	tx, err := store.UpdateTransaction(c.Request.Context(), models.Transaction{
		ID:           id,
		Type:         input.Type,
		Category:     input.Category,
		Amount:       input.Amount,
		Description:  input.Description,
		Date:         input.Date,
		ReceiptImage: input.ReceiptImage,
		Priority:     input.Priority,
	})
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "transaction updated", tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid transaction id"))
		return
	}

	if err := store.DeleteTransaction(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "transaction deleted", nil)
}
