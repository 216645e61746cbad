package finance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/finvi/internal/models"
)

func TestAddCategoryRejectsCaseInsensitiveDuplicate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.AddCategory(ctx, models.Category{Name: "ăn uống"}, models.TransactionTypeExpense)
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	// the same name is fine in the other set
	_, err = store.AddCategory(ctx, models.Category{Name: "Ăn uống"}, models.TransactionTypeIncome)
	assert.NoError(t, err)
}

func TestAddCategoryUnknownIconFallsBack(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	category, err := store.AddCategory(ctx, models.Category{Name: "Thú cưng", Icon: "dog"}, models.TransactionTypeExpense)
	require.NoError(t, err)
	assert.Equal(t, models.IconDefault, category.Icon)
}

func TestRenameCategoryCascades(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.AddTransaction(ctx, models.TransactionCreate{
		Type: models.TransactionTypeExpense, Category: "Ăn uống",
		Amount: amount(50000), Date: time.Now(),
	})
	require.NoError(t, err)
	_, err = store.AddRecurring(ctx, models.RecurringCreate{
		Type: models.TransactionTypeExpense, Category: "Ăn uống",
		Amount: amount(50000), StartDate: time.Now(), Frequency: models.FrequencyWeekly,
	})
	require.NoError(t, err)
	budget, err := store.AddBudget(ctx, models.BudgetCreate{Category: "Ăn uống", Amount: amount(500000)})
	require.NoError(t, err)

	_, err = store.UpdateCategory(ctx, "Ăn uống", models.Category{Name: "Ẩm thực", Icon: "food"}, models.TransactionTypeExpense)
	require.NoError(t, err)

	assert.Equal(t, "Ẩm thực", store.Transactions()[0].Category)
	assert.Equal(t, "Ẩm thực", store.Recurring()[0].Category)
	got, err := store.Budget(budget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ẩm thực", got.Category)
	// derived spend follows the rename
	assert.True(t, got.Spent.Equal(amount(50000)))

	_, found := store.CategoryByName("Ăn uống")
	assert.False(t, found)
	_, found = store.CategoryByName("Ẩm thực")
	assert.True(t, found)
}

func TestDeleteCategoryGuards(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	err := store.DeleteCategory(ctx, "Khác", models.TransactionTypeExpense)
	assert.ErrorIs(t, err, ErrCategoryProtected)

	_, err = store.AddTransaction(ctx, models.TransactionCreate{
		Type: models.TransactionTypeExpense, Category: "Du lịch",
		Amount: amount(100), Date: time.Now(),
	})
	require.NoError(t, err)
	err = store.DeleteCategory(ctx, "Du lịch", models.TransactionTypeExpense)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// unreferenced categories delete cleanly
	require.NoError(t, store.DeleteCategory(ctx, "Giải trí", models.TransactionTypeExpense))
	_, found := store.CategoryByName("Giải trí")
	assert.False(t, found)

	err = store.DeleteCategory(ctx, "Giải trí", models.TransactionTypeExpense)
	assert.ErrorIs(t, err, ErrNotFound)
}
