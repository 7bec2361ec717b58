package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]Collection, int, error)
	GetByID(ctx context.Context, id uint) (*Collection, error)
	Create(ctx context.Context, in Input) (*Collection, error)
	Update(ctx context.Context, id uint, in Input) (*Collection, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// products_count is computed with a LEFT JOIN so empty collections report 0.
const selectCollection = `
	SELECT
		c.id,
		c.title,
		c.featured_product_id,
		COUNT(p.id) AS products_count
	FROM collections c
	LEFT JOIN products p ON p.collection_id = c.id
`

func (r *repository) List(ctx context.Context, params ListParams) ([]Collection, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("search", utils.PtrString(params.Search)),
		zap.Int("page", params.Page),
		zap.Int("limit", params.Limit),
	)

	where := []string{}
	args := []any{}

	if params.Search != nil && *params.Search != "" {
		args = append(args, "%"+*params.Search+"%")
		where = append(where, fmt.Sprintf("c.title ILIKE $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections c`+whereSQL, args...).Scan(&total); err != nil {
		log.Error("failed to count collections", zap.Error(err))
		return nil, 0, err
	}

	query := selectCollection + whereSQL + `
	GROUP BY c.id
	ORDER BY c.title ASC, c.id
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, params.Limit, utils.Offset(params.Page, params.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query collections", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	collections := []Collection{}
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.FeaturedProductID, &c.ProductsCount); err != nil {
			log.Error("failed to scan collection", zap.Error(err))
			return nil, 0, err
		}
		collections = append(collections, c)
	}

	return collections, total, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Collection, error) {
	var c Collection
	err := r.db.QueryRowContext(ctx, selectCollection+` WHERE c.id = $1 GROUP BY c.id`, id).
		Scan(&c.ID, &c.Title, &c.FeaturedProductID, &c.ProductsCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get collection",
			zap.String("layer", "repository"),
			zap.Uint("collection_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, in Input) (*Collection, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	c := Collection{Title: in.Title, FeaturedProductID: in.FeaturedProductID}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO collections (title, featured_product_id) VALUES ($1, $2) RETURNING id`,
		in.Title, in.FeaturedProductID,
	).Scan(&c.ID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrFeaturedProductNotFound
		}
		log.Error("failed to insert collection", zap.Error(err))
		return nil, err
	}

	log.Info("collection created", zap.Uint("collection_id", c.ID))
	return &c, nil
}

func (r *repository) Update(ctx context.Context, id uint, in Input) (*Collection, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("collection_id", id),
	)

	res, err := r.db.ExecContext(ctx,
		`UPDATE collections SET title = $2, featured_product_id = $3 WHERE id = $1`,
		id, in.Title, in.FeaturedProductID,
	)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrFeaturedProductNotFound
		}
		log.Error("failed to update collection", zap.Error(err))
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCollectionNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.Uint("collection_id", id),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			log.Warn("collection still has products")
			return ErrCollectionProtected
		}
		log.Error("failed to delete collection", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCollectionNotFound
	}

	log.Info("collection deleted")
	return nil
}
