package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]Product, int, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*Product, error)
	UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `p.id, p.title, p.slug, p.description, p.unit_price, p.inventory, p.last_update, p.collection_id`

var orderingFields = map[string]string{
	"title":       "p.title",
	"unit_price":  "p.unit_price",
	"last_update": "p.last_update",
	"inventory":   "p.inventory",
}

// orderClause turns "-unit_price" into "p.unit_price DESC, p.id".
func orderClause(ordering string) (string, error) {
	if ordering == "" {
		return "p.title ASC, p.id", nil
	}

	dir := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		dir = "DESC"
		field = strings.TrimPrefix(ordering, "-")
	}

	col, ok := orderingFields[field]
	if !ok {
		return "", ErrInvalidOrdering
	}
	return col + " " + dir + ", p.id", nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.UnitPrice,
		&p.Inventory,
		&p.LastUpdate,
		&p.CollectionID,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, params ListParams) ([]Product, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	orderBy, err := orderClause(params.Ordering)
	if err != nil {
		log.Warn("invalid ordering", zap.String("ordering", params.Ordering))
		return nil, 0, err
	}

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if params.CollectionID != nil {
		args = append(args, *params.CollectionID)
		where = append(where, fmt.Sprintf("p.collection_id = $%d", len(args)))
	}
	if params.Search != nil && *params.Search != "" {
		args = append(args, "%"+*params.Search+"%")
		where = append(where, fmt.Sprintf("p.title ILIKE $%d", len(args)))
	}
	if params.PriceGTE != nil {
		args = append(args, *params.PriceGTE)
		where = append(where, fmt.Sprintf("p.unit_price >= $%d", len(args)))
	}
	if params.PriceLTE != nil {
		args = append(args, *params.PriceLTE)
		where = append(where, fmt.Sprintf("p.unit_price <= $%d", len(args)))
	}
	if params.InStock != nil {
		if *params.InStock {
			where = append(where, "p.inventory > 0")
		} else {
			where = append(where, "p.inventory = 0")
		}
	}

	whereSQL := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM products p WHERE ` + whereSQL
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	query := `
	SELECT ` + productColumns + `
	FROM products p
	WHERE ` + whereSQL + `
	ORDER BY ` + orderBy + `
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, params.Limit, utils.Offset(params.Page, params.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]Product, 0, params.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("products listed", zap.Int("count", len(products)), zap.Int("total", total))
	return products, total, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.Uint("product_id", id),
	)

	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		log.Error("failed to get product", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT pr.id, pr.description, pr.discount
		FROM promotions pr
		JOIN product_promotions pp ON pp.promotion_id = pr.id
		WHERE pp.product_id = $1
		ORDER BY pr.id
	`, id)
	if err != nil {
		log.Error("failed to load promotions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var promo Promotion
		if err := rows.Scan(&promo.ID, &promo.Description, &promo.Discount); err != nil {
			return nil, err
		}
		p.Promotions = append(p.Promotions, promo)
	}

	return p, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("slug", p.Slug),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (title, slug, description, unit_price, inventory, collection_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, last_update
	`,
		p.Title,
		p.Slug,
		p.Description,
		p.UnitPrice,
		p.Inventory,
		p.CollectionID,
	).Scan(&p.ID, &p.LastUpdate)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			log.Warn("collection does not exist", zap.Uint("collection_id", p.CollectionID))
			return nil, ErrCollectionNotFound
		}
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return p, nil
}

func (r *repository) Update(ctx context.Context, id uint, in UpdateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("product_id", id),
	)

	// COALESCE keeps the stored value for every nil field
	query := `
		UPDATE products p
		SET title = COALESCE($2, title),
			slug = COALESCE($3, slug),
			description = COALESCE($4, description),
			unit_price = COALESCE($5, unit_price),
			inventory = COALESCE($6, inventory),
			collection_id = COALESCE($7, collection_id),
			last_update = NOW()
		WHERE p.id = $1
		RETURNING ` + productColumns

	var price any
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}

	row := r.db.QueryRowContext(ctx, query,
		id, in.Title, in.Slug, in.Description, price, in.Inventory, in.CollectionID,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if db.IsForeignKeyViolation(err) {
			return nil, ErrCollectionNotFound
		}
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("product updated")
	return p, nil
}

func (r *repository) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdatePrice"),
		zap.Uint("product_id", id),
	)

	row := r.db.QueryRowContext(ctx, `
		UPDATE products p
		SET unit_price = $2, last_update = NOW()
		WHERE p.id = $1
		RETURNING `+productColumns, id, price)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		log.Error("failed to update price", zap.Error(err))
		return nil, err
	}

	log.Info("product price updated", zap.String("unit_price", price.StringFixed(2)))
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.Uint("product_id", id),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			log.Warn("product is referenced by order items")
			return ErrProductProtected
		}
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	log.Info("product deleted")
	return nil
}
