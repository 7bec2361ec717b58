package cart

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, id uuid.UUID) (*Cart, error)
	Get(ctx context.Context, id uuid.UUID) (*Cart, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]CartItem, error)
	GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*CartItem, error)
	UpsertItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) (uint, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectItems = `
	SELECT
		ci.id,
		ci.cart_id,
		ci.quantity,
		p.id,
		p.title,
		p.unit_price
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
`

func scanItem(row interface{ Scan(...any) error }) (*CartItem, error) {
	var it CartItem
	err := row.Scan(
		&it.ID,
		&it.CartID,
		&it.Quantity,
		&it.Product.ID,
		&it.Product.Title,
		&it.Product.UnitPrice,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) Create(ctx context.Context, id uuid.UUID) (*Cart, error) {
	c := Cart{ID: id, Items: []CartItem{}}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO carts (id) VALUES ($1) RETURNING created_at`, id,
	).Scan(&c.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create cart",
			zap.String("layer", "repository"),
			zap.String("cart_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return &c, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM carts WHERE id = $1`, id,
	).Scan(&c.ID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM carts WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *repository) ListItems(ctx context.Context, cartID uuid.UUID) ([]CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListItems"),
		zap.String("cart_id", cartID.String()),
	)

	rows, err := r.db.QueryContext(ctx, selectItems+` WHERE ci.cart_id = $1 ORDER BY ci.id`, cartID)
	if err != nil {
		log.Error("failed to query cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []CartItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan cart item", zap.Error(err))
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, selectItems+` WHERE ci.cart_id = $1 AND ci.id = $2`, cartID, itemID)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	return it, err
}

// UpsertItem adds quantity to the (cart, product) row, creating it when absent.
func (r *repository) UpsertItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) (uint, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertItem"),
		zap.String("cart_id", cartID.String()),
		zap.Uint("product_id", productID),
	)

	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id
	`, cartID, productID, quantity).Scan(&id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			if db.Constraint(err) == fkCartItemsProduct {
				return 0, ErrProductNotFound
			}
			return 0, ErrCartNotFound
		}
		log.Error("failed to upsert cart item", zap.Error(err))
		return 0, err
	}

	log.Debug("cart item upserted", zap.Uint("item_id", id))
	return id, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2 AND cart_id = $3`,
		quantity, itemID, cartID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}
