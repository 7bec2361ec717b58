package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/apperror"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CartExists(ctx context.Context, cartID uuid.UUID) (bool, error)
	CountCartItems(ctx context.Context, cartID uuid.UUID) (int, error)
	WithinTx(ctx context.Context, fn func(Store) error) error

	List(ctx context.Context, params ListParams) ([]Order, int, error)
	Get(ctx context.Context, id uint, viewer Viewer) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CartExists(ctx context.Context, cartID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`, cartID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) CountCartItems(ctx context.Context, cartID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cartID,
	).Scan(&n)
	return n, err
}

// WithinTx runs fn against a Store bound to a new transaction. The transaction
// is committed when fn returns nil and rolled back on every other exit path,
// including a panic inside fn.
func (r *repository) WithinTx(ctx context.Context, fn func(Store) error) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "WithinTx"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return apperror.Transaction("failed to begin transaction", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return apperror.Transaction("failed to commit transaction", err)
	}

	committed = true
	return nil
}

func viewerFilter(viewer Viewer, where []string, args []any) ([]string, []any) {
	if viewer.IsAdmin {
		return where, args
	}
	args = append(args, viewer.UserID)
	where = append(where, fmt.Sprintf("c.user_id = $%d", len(args)))
	return where, args
}

func sortClause(sort string) (string, error) {
	switch sort {
	case "", "-placed_at":
		return "o.placed_at DESC, o.id DESC", nil
	case "placed_at":
		return "o.placed_at ASC, o.id ASC", nil
	}
	return "", ErrInvalidSort
}

func (r *repository) List(ctx context.Context, params ListParams) ([]Order, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	orderBy, err := sortClause(params.Sort)
	if err != nil {
		return nil, 0, err
	}

	where := []string{"1=1"}
	args := []any{}
	where, args = viewerFilter(params.Viewer, where, args)
	if params.PaymentStatus != nil {
		args = append(args, *params.PaymentStatus)
		where = append(where, fmt.Sprintf("o.payment_status = $%d", len(args)))
	}

	from := ` FROM orders o JOIN customers c ON c.id = o.customer_id WHERE ` + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, 0, err
	}

	args = append(args, params.Limit, utils.Offset(params.Page, params.Limit))
	query := `SELECT o.id, o.customer_id, o.placed_at, o.payment_status` + from +
		fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.PlacedAt, &o.PaymentStatus); err != nil {
			log.Error("failed to scan order", zap.Error(err))
			return nil, 0, err
		}
		o.Items = []OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, 0, err
	}
	return orders, total, nil
}

// attachItems loads the items of every order in one query.
func (r *repository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	index := make(map[uint]int, len(orders))
	for i, o := range orders {
		ids[i] = int64(o.ID)
		index[o.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.title, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductTitle, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}

func (r *repository) Get(ctx context.Context, id uint, viewer Viewer) (*Order, error) {
	where := []string{"o.id = $1"}
	args := []any{id}
	where, args = viewerFilter(viewer, where, args)

	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.customer_id, o.placed_at, o.payment_status
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE `+strings.Join(where, " AND "), args...,
	).Scan(&o.ID, &o.CustomerID, &o.PlacedAt, &o.PaymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Items = []OrderItem{}

	orders := []Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return ErrOrderProtected
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
