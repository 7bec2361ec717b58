package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Store is the set of reads and writes checkout performs inside a single
// transaction. Implementations are only valid for the duration of the
// WithinTx callback that received them.
type Store interface {
	LockCart(ctx context.Context, cartID uuid.UUID) error
	CustomerIDForUser(ctx context.Context, userID uint) (uint, error)
	InsertOrder(ctx context.Context, customerID uint, status PaymentStatus) (*Order, error)
	CartLines(ctx context.Context, cartID uuid.UUID) ([]CartLine, error)
	BulkInsertItems(ctx context.Context, orderID uint, items []OrderItem) error
	DeleteCart(ctx context.Context, cartID uuid.UUID) error
}

type txStore struct {
	tx *sql.Tx
}

// LockCart takes a row lock on the cart. A concurrent checkout that already
// deleted the cart makes this return ErrCartNotFound once its lock is released.
func (s *txStore) LockCart(ctx context.Context, cartID uuid.UUID) error {
	var id uuid.UUID
	err := s.tx.QueryRowContext(ctx,
		`SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCartNotFound
	}
	return err
}

func (s *txStore) CustomerIDForUser(ctx context.Context, userID uint) (uint, error) {
	var id uint
	err := s.tx.QueryRowContext(ctx,
		`SELECT id FROM customers WHERE user_id = $1`, userID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCustomerNotFound
	}
	return id, err
}

func (s *txStore) InsertOrder(ctx context.Context, customerID uint, status PaymentStatus) (*Order, error) {
	o := &Order{CustomerID: customerID, PaymentStatus: status}
	err := s.tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, payment_status)
		VALUES ($1, $2)
		RETURNING id, placed_at
	`, customerID, status).Scan(&o.ID, &o.PlacedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CartLines reads every item of the cart together with the product's current
// unit price in one query.
func (s *txStore) CartLines(ctx context.Context, cartID uuid.UUID) ([]CartLine, error) {
	rows, err := s.tx.QueryContext(ctx, `
		SELECT p.id, p.title, ci.quantity, p.unit_price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.ProductID, &l.Title, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// BulkInsertItems writes all items with one multi-row INSERT and fills in the
// generated ids.
func (s *txStore) BulkInsertItems(ctx context.Context, orderID uint, items []OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*4)
	for _, item := range items {
		n := len(args)
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, orderID, item.ProductID, item.Quantity, item.UnitPrice)
	}

	query := `INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES ` +
		strings.Join(values, ", ") + ` RETURNING id`

	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(items) {
			return fmt.Errorf("bulk insert returned more ids than items")
		}
		if err := rows.Scan(&items[i].ID); err != nil {
			return err
		}
		items[i].OrderID = orderID
		i++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if i != len(items) {
		return fmt.Errorf("bulk insert returned %d ids for %d items", i, len(items))
	}
	return nil
}

func (s *txStore) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	res, err := s.tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartNotFound
	}
	return nil
}
