package customer

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	Provision(ctx context.Context, userID uint, email string) (*Customer, error)
	GetByUserID(ctx context.Context, userID uint) (*Customer, error)
	Update(ctx context.Context, userID uint, in UpdateInput) (*Customer, error)
	List(ctx context.Context, params ListParams) ([]Customer, int, error)
	SetMembership(ctx context.Context, id uint, m Membership) (*Customer, error)
}

type repository struct {
	db db.DBTX
}

// NewRepository accepts the pool or a transaction.
func NewRepository(q db.DBTX) Repository {
	return &repository{db: q}
}

const customerColumns = `id, user_id, first_name, last_name, email, phone, birth_date, membership`

func scanCustomer(row interface{ Scan(...any) error }) (*Customer, error) {
	var c Customer
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.BirthDate,
		&c.Membership,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Provision creates the customer profile for a user. Calling it again for the
// same user returns the existing row.
func (r *repository) Provision(ctx context.Context, userID uint, email string) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Provision"),
		zap.Uint("user_id", userID),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (user_id, email)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING `+customerColumns, userID, email)

	c, err := scanCustomer(row)
	if err != nil {
		log.Error("failed to provision customer", zap.Error(err))
		return nil, err
	}

	log.Info("customer provisioned", zap.Uint("customer_id", c.ID))
	return c, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) (*Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE user_id = $1`, userID)
	return scanCustomer(row)
}

func (r *repository) Update(ctx context.Context, userID uint, in UpdateInput) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("user_id", userID),
	)

	row := r.db.QueryRowContext(ctx, `
		UPDATE customers
		SET first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			phone = COALESCE($4, phone),
			birth_date = COALESCE($5, birth_date)
		WHERE user_id = $1
		RETURNING `+customerColumns,
		userID, in.FirstName, in.LastName, in.Phone, in.BirthDate,
	)

	c, err := scanCustomer(row)
	if err != nil && !errors.Is(err, ErrCustomerNotFound) {
		log.Error("failed to update customer", zap.Error(err))
	}
	return c, err
}

func (r *repository) List(ctx context.Context, params ListParams) ([]Customer, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		log.Error("failed to count customers", zap.Error(err))
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		ORDER BY first_name, last_name, id
		LIMIT $1 OFFSET $2
	`, params.Limit, utils.Offset(params.Page, params.Limit))
	if err != nil {
		log.Error("failed to list customers", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}
	return customers, total, rows.Err()
}

func (r *repository) SetMembership(ctx context.Context, id uint, m Membership) (*Customer, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE customers SET membership = $2
		WHERE id = $1
		RETURNING `+customerColumns, id, m)
	return scanCustomer(row)
}
