package review

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByProduct(ctx context.Context, productID uint) ([]Review, error)
	Get(ctx context.Context, productID, reviewID uint) (*Review, error)
	Create(ctx context.Context, productID uint, in CreateInput) (*Review, error)
	Delete(ctx context.Context, productID, reviewID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByProduct(ctx context.Context, productID uint) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, description, date
		FROM reviews
		WHERE product_id = $1
		ORDER BY date DESC, id DESC
	`, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list reviews",
			zap.String("layer", "repository"),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Name, &rv.Description, &rv.Date); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *repository) Get(ctx context.Context, productID, reviewID uint) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, name, description, date
		FROM reviews
		WHERE id = $1 AND product_id = $2
	`, reviewID, productID).Scan(&rv.ID, &rv.ProductID, &rv.Name, &rv.Description, &rv.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) Create(ctx context.Context, productID uint, in CreateInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("product_id", productID),
	)

	rv := Review{ProductID: productID, Name: in.Name, Description: in.Description}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, date
	`, productID, in.Name, in.Description).Scan(&rv.ID, &rv.Date)
	if err != nil {
		log.Error("failed to insert review", zap.Error(err))
		return nil, err
	}

	log.Info("review created", zap.Uint("review_id", rv.ID))
	return &rv, nil
}

func (r *repository) Delete(ctx context.Context, productID, reviewID uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1 AND product_id = $2`, reviewID, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
