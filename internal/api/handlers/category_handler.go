package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/models"
)

type CategoryHandler struct {
	stores *finance.Manager
}

func NewCategoryHandler(stores *finance.Manager) *CategoryHandler {
	return &CategoryHandler{stores: stores}
}

type categoryInput struct {
	Name string                 `json:"name" binding:"required"`
	Icon string                 `json:"icon"`
	Type models.TransactionType `json:"type" binding:"required"`
}

// List returns both category sets, or one of them when ?type= is given.
func (h *CategoryHandler) List(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	if txType := c.Query("type"); txType != "" {
		ok(c, http.StatusOK, "", store.Categories(models.TransactionType(txType)))
		return
	}

	ok(c, http.StatusOK, "", gin.H{
		"expense": store.Categories(models.TransactionTypeExpense),
		"income":  store.Categories(models.TransactionTypeIncome),
	})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	category, err := store.AddCategory(c.Request.Context(), models.Category{
		Name: input.Name,
		Icon: models.Icon(input.Icon),
	}, input.Type)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "category created", category)
}

// Update renames or re-icons the category addressed by its current name.
// Renames cascade through transactions, recurring templates and budgets.
func (h *CategoryHandler) Update(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	category, err := store.UpdateCategory(c.Request.Context(), c.Param("name"), models.Category{
		Name: input.Name,
		Icon: models.Icon(input.Icon),
	}, input.Type)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "category updated", category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	txType := models.TransactionType(c.Query("type"))
	if err := store.DeleteCategory(c.Request.Context(), c.Param("name"), txType); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "category deleted", nil)
}
