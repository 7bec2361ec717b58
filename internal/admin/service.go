package admin

import (
	"context"
	"fmt"
	"io"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

// lowInventory matches the "Low" inventory status of a product.
const lowInventory = 10

type Service interface {
	ListProducts(ctx context.Context, params ProductListParams) (*Page[ProductRow], error)
	ListCustomers(ctx context.Context, params CustomerListParams) (*Page[CustomerRow], error)
	ExportProducts(ctx context.Context, params ProductListParams, w io.Writer) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, params ProductListParams) (*Page[ProductRow], error) {
	params.Page, _ = utils.NormalizePage(params.Page, PageSize, PageSize, PageSize)

	rows, total, err := s.repo.ListProducts(ctx, params, PageSize)
	if err != nil {
		return nil, err
	}
	return &Page[ProductRow]{Items: rows, Total: total, Page: params.Page, Limit: PageSize}, nil
}

func (s *service) ListCustomers(ctx context.Context, params CustomerListParams) (*Page[CustomerRow], error) {
	params.Page, _ = utils.NormalizePage(params.Page, PageSize, PageSize, PageSize)

	rows, total, err := s.repo.ListCustomers(ctx, params, PageSize)
	if err != nil {
		return nil, err
	}
	return &Page[CustomerRow]{Items: rows, Total: total, Page: params.Page, Limit: PageSize}, nil
}

var productHeaders = []string{"ID", "Title", "Unit Price", "Inventory", "Inventory Status", "Collection"}

// ExportProducts writes every product matching params as an xlsx workbook.
func (s *service) ExportProducts(ctx context.Context, params ProductListParams, w io.Writer) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ExportProducts"),
	)

	rows, _, err := s.repo.ListProducts(ctx, params, 0)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range productHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range rows {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.UnitPrice.StringFixed(2))
		row.AddCell().SetValue(p.Inventory)
		row.AddCell().SetValue(p.InventoryStatus)
		row.AddCell().SetValue(p.CollectionTitle)
	}

	if err := file.Write(w); err != nil {
		log.Error("failed to write workbook", zap.Error(err))
		return err
	}

	log.Info("products exported", zap.Int("rows", len(rows)))
	return nil
}
