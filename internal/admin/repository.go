package admin

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	ListProducts(ctx context.Context, params ProductListParams, limit int) ([]ProductRow, int, error)
	ListCustomers(ctx context.Context, params CustomerListParams, limit int) ([]CustomerRow, int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func productOrdering(ordering string) (string, error) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	var col string
	switch field {
	case "", "title":
		col = "p.title"
	case "unit_price":
		col = "p.unit_price"
	case "inventory":
		col = "p.inventory"
	default:
		return "", ErrInvalidOrdering
	}

	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, p.id", col, dir), nil
}

// ListProducts returns one page of the product admin list. A limit of zero
// returns every matching row.
func (r *repository) ListProducts(ctx context.Context, params ProductListParams, limit int) ([]ProductRow, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	orderBy, err := productOrdering(params.Ordering)
	if err != nil {
		return nil, 0, err
	}

	where := []string{"1=1"}
	args := []any{}
	if params.CollectionID != nil {
		args = append(args, *params.CollectionID)
		where = append(where, fmt.Sprintf("p.collection_id = $%d", len(args)))
	}
	if params.LowStock {
		args = append(args, lowInventory)
		where = append(where, fmt.Sprintf("p.inventory < $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where = append(where, fmt.Sprintf("p.title ILIKE $%d", len(args)))
	}

	from := ` FROM products p JOIN collections c ON c.id = p.collection_id WHERE ` + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT p.id, p.title, p.unit_price, p.inventory, c.title` + from + ` ORDER BY ` + orderBy
	if limit > 0 {
		args = append(args, limit, utils.Offset(params.Page, limit))
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	res := []ProductRow{}
	for rows.Next() {
		var row ProductRow
		if err := rows.Scan(&row.ID, &row.Title, &row.UnitPrice, &row.Inventory, &row.CollectionTitle); err != nil {
			return nil, 0, err
		}
		row.InventoryStatus = product.Product{Inventory: row.Inventory}.InventoryStatus()
		res = append(res, row)
	}
	return res, total, rows.Err()
}

func (r *repository) ListCustomers(ctx context.Context, params CustomerListParams, limit int) ([]CustomerRow, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCustomers"),
	)

	where := "1=1"
	args := []any{}
	if params.Search != "" {
		args = append(args, params.Search+"%")
		where = fmt.Sprintf("(cu.first_name ILIKE $%d OR cu.last_name ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers cu WHERE `+where, args...).Scan(&total); err != nil {
		log.Error("failed to count customers", zap.Error(err))
		return nil, 0, err
	}

	args = append(args, limit, utils.Offset(params.Page, limit))
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT cu.id, cu.first_name, cu.last_name, cu.membership, COUNT(o.id)
		FROM customers cu
		LEFT JOIN orders o ON o.customer_id = cu.id
		WHERE %s
		GROUP BY cu.id
		ORDER BY cu.first_name, cu.last_name, cu.id
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args)), args...)
	if err != nil {
		log.Error("failed to list customers", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	res := []CustomerRow{}
	for rows.Next() {
		var row CustomerRow
		if err := rows.Scan(&row.ID, &row.FirstName, &row.LastName, &row.Membership, &row.OrdersCount); err != nil {
			return nil, 0, err
		}
		res = append(res, row)
	}
	return res, total, rows.Err()
}
