package user

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/apperror"
	"storefront-be/internal/customer"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

var errNestedTx = errors.New("user repository is already bound to a transaction")

type Repository interface {
	Create(ctx context.Context, email, password string, role Role) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// WithinTx runs fn with a user repository and a customer provisioner that
	// share one transaction. It commits only when fn returns nil.
	WithinTx(ctx context.Context, fn func(users Repository, customers CustomerProvisioner) error) error
}

type repository struct {
	pool *sql.DB
	db   db.DBTX
}

func NewRepository(pool *sql.DB) Repository {
	return &repository{pool: pool, db: pool}
}

func (r *repository) WithinTx(ctx context.Context, fn func(users Repository, customers CustomerProvisioner) error) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "WithinTx"),
	)

	if r.pool == nil {
		return errNestedTx
	}

	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return apperror.Transaction("failed to begin transaction", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if err := fn(&repository{db: tx}, customer.NewRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return apperror.Transaction("failed to commit transaction", err)
	}

	committed = true
	return nil
}

func (r *repository) Create(ctx context.Context, email, password string, role Role) (*User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, password, role) VALUES ($1, $2, $3) RETURNING id, email, password, role",
		email, password, role,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role)

	if db.IsUniqueViolation(err) && db.Constraint(err) == uniqueUsersEmail {
		return nil, ErrEmailExists
	}
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password, role FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
