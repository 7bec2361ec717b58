package address

import (
	"context"
	"database/sql"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByCustomer(ctx context.Context, customerID uint) ([]Address, error)
	Create(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, customerID, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uint) ([]Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByCustomer"),
		zap.Uint("customer_id", customerID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, street, city, zip
		FROM addresses
		WHERE customer_id = $1
		ORDER BY id
	`, customerID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	res := []Address{}
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Street, &a.City, &a.Zip); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

func (r *repository) Create(ctx context.Context, addr *Address) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO addresses (customer_id, street, city, zip)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, addr.CustomerID, addr.Street, addr.City, addr.Zip).Scan(&addr.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert address",
			zap.String("layer", "repository"),
			zap.Uint("customer_id", addr.CustomerID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Delete only removes addresses owned by customerID.
func (r *repository) Delete(ctx context.Context, customerID, id uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = $1 AND customer_id = $2`, id, customerID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAddressNotFound
	}
	return nil
}
