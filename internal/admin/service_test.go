package admin

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListProducts(ctx context.Context, params ProductListParams, limit int) ([]ProductRow, int, error) {
	args := m.Called(ctx, params, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]ProductRow), args.Int(1), args.Error(2)
}

func (m *MockRepository) ListCustomers(ctx context.Context, params CustomerListParams, limit int) ([]CustomerRow, int, error) {
	args := m.Called(ctx, params, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]CustomerRow), args.Int(1), args.Error(2)
}

func TestService_ListProducts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ListProducts", ctx, ProductListParams{Page: 1}, PageSize).
		Return([]ProductRow{{ID: 1}}, 1, nil)

	page, err := NewService(repo).ListProducts(ctx, ProductListParams{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Items, 1)
}

func TestService_ListCustomers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ListCustomers", ctx, CustomerListParams{Page: 3}, PageSize).
		Return(nil, 0, errors.New("db error"))

	_, err := NewService(repo).ListCustomers(ctx, CustomerListParams{Page: 3})
	assert.EqualError(t, err, "db error")
}

func TestService_ExportProducts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ListProducts", ctx, ProductListParams{}, 0).Return([]ProductRow{
		{ID: 1, Title: "Bread", UnitPrice: decimal.RequireFromString("2.5"), Inventory: 3, InventoryStatus: "Low", CollectionTitle: "Bakery"},
		{ID: 2, Title: "Milk", UnitPrice: decimal.RequireFromString("1.20"), Inventory: 40, InventoryStatus: "Ok", CollectionTitle: "Dairy"},
	}, 2, nil)

	var buf bytes.Buffer
	require.NoError(t, NewService(repo).ExportProducts(ctx, ProductListParams{}, &buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Inventory Status", sheet.Rows[0].Cells[4].Value)
	assert.Equal(t, "Bread", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "2.50", sheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "Dairy", sheet.Rows[2].Cells[5].Value)
}

func TestService_ExportProducts_RepoError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ListProducts", ctx, ProductListParams{}, 0).Return(nil, 0, errors.New("db error"))

	var buf bytes.Buffer
	assert.Error(t, NewService(repo).ExportProducts(ctx, ProductListParams{}, &buf))
	assert.Zero(t, buf.Len())
}
