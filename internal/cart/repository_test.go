package cart

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemCols = []string{"id", "cart_id", "quantity", "product_id", "title", "unit_price"}

func TestRepository_CreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	cartID := uuid.New()
	now := time.Now()

	t.Run("Create", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO carts (id) VALUES ($1) RETURNING created_at")).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		c, err := repo.Create(ctx, cartID)
		require.NoError(t, err)
		assert.Equal(t, cartID, c.ID)
		assert.Empty(t, c.Items)
	})

	t.Run("Get with items", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, created_at FROM carts WHERE id = \\$1").
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(cartID.String(), now))
		mock.ExpectQuery("FROM cart_items ci JOIN products p ON p.id = ci.product_id WHERE ci.cart_id = \\$1").
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow(1, cartID.String(), 2, 10, "A", "10.00").
				AddRow(2, cartID.String(), 1, 11, "B", "5.00"))

		c, err := repo.Get(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, c.Items, 2)
		assert.Equal(t, "25", c.TotalPrice().String())
		assert.Equal(t, "20", c.Items[0].TotalPrice().String())
	})

	t.Run("Get missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, created_at FROM carts").
			WithArgs(cartID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, cartID)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	cartID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM carts WHERE id = $1)")).
		WithArgs(cartID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(ctx, cartID)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectExec("DELETE FROM carts WHERE id = \\$1").
		WithArgs(cartID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(ctx, cartID), ErrCartNotFound)
}

func TestRepository_UpsertItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	cartID := uuid.New()

	t.Run("Increments on conflict", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items (.+) ON CONFLICT \\(cart_id, product_id\\) DO UPDATE SET quantity = cart_items.quantity \\+ EXCLUDED.quantity").
			WithArgs(cartID, uint(10), 2).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

		id, err := repo.UpsertItem(ctx, cartID, 10, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(4), id)
	})

	t.Run("Missing product", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WillReturnError(&pq.Error{Code: "23503", Constraint: "cart_items_product_id_fkey"})

		_, err := repo.UpsertItem(ctx, cartID, 99, 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Missing cart", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WillReturnError(&pq.Error{Code: "23503", Constraint: "cart_items_cart_id_fkey"})

		_, err := repo.UpsertItem(ctx, cartID, 10, 1)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("DB error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").WillReturnError(errors.New("db error"))

		_, err := repo.UpsertItem(ctx, cartID, 10, 1)
		assert.EqualError(t, err, "db error")
	})
}

func TestRepository_ItemMutations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	cartID := uuid.New()

	mock.ExpectExec("UPDATE cart_items SET quantity = \\$1 WHERE id = \\$2 AND cart_id = \\$3").
		WithArgs(5, uint(1), cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateItemQuantity(ctx, cartID, 1, 5))

	mock.ExpectExec("UPDATE cart_items").
		WithArgs(5, uint(2), cartID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateItemQuantity(ctx, cartID, 2, 5), ErrCartItemNotFound)

	mock.ExpectExec("DELETE FROM cart_items WHERE id = \\$1 AND cart_id = \\$2").
		WithArgs(uint(1), cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.RemoveItem(ctx, cartID, 1))

	mock.ExpectQuery("WHERE ci.cart_id = \\$1 AND ci.id = \\$2").
		WithArgs(cartID, uint(1)).
		WillReturnRows(sqlmock.NewRows(itemCols))
	_, err = repo.GetItem(ctx, cartID, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartTotals(t *testing.T) {
	c := Cart{Items: []CartItem{
		{Quantity: 3, Product: CartProduct{UnitPrice: decimal.RequireFromString("1.10")}},
		{Quantity: 1, Product: CartProduct{UnitPrice: decimal.RequireFromString("0.05")}},
	}}
	assert.Equal(t, "3.35", c.TotalPrice().StringFixed(2))
	assert.True(t, Cart{}.TotalPrice().IsZero())
}
