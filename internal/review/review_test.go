package review

import (
	"context"
	"testing"
	"time"

	"storefront-be/internal/apperror"
	"storefront-be/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var reviewCols = []string{"id", "product_id", "name", "description", "date"}

func TestRepository(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	today := time.Now().Truncate(24 * time.Hour)

	t.Run("ListByProduct", func(t *testing.T) {
		sqlMock.ExpectQuery("FROM reviews WHERE product_id = \\$1 ORDER BY date DESC").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows(reviewCols).
				AddRow(2, 1, "Ann", "Great", today).
				AddRow(1, 1, "Bob", "Okay", today))

		reviews, err := repo.ListByProduct(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, reviews, 2)
		assert.Equal(t, "Ann", reviews[0].Name)
	})

	t.Run("Get scoped to product", func(t *testing.T) {
		sqlMock.ExpectQuery("WHERE id = \\$1 AND product_id = \\$2").
			WithArgs(uint(5), uint(1)).
			WillReturnRows(sqlmock.NewRows(reviewCols))

		_, err := repo.Get(ctx, 1, 5)
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("Create", func(t *testing.T) {
		sqlMock.ExpectQuery("INSERT INTO reviews").
			WithArgs(uint(1), "Ann", "Great").
			WillReturnRows(sqlmock.NewRows([]string{"id", "date"}).AddRow(3, today))

		rv, err := repo.Create(ctx, 1, CreateInput{Name: "Ann", Description: "Great"})
		require.NoError(t, err)
		assert.Equal(t, uint(3), rv.ID)
		assert.Equal(t, uint(1), rv.ProductID)
	})

	t.Run("Delete missing", func(t *testing.T) {
		sqlMock.ExpectExec("DELETE FROM reviews").
			WithArgs(uint(9), uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 1, 9), ErrReviewNotFound)
	})

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByProduct(ctx context.Context, productID uint) ([]Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, productID, reviewID uint) (*Review, error) {
	args := m.Called(ctx, productID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, productID uint, in CreateInput) (*Review, error) {
	args := m.Called(ctx, productID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, productID, reviewID uint) error {
	return m.Called(ctx, productID, reviewID).Error(0)
}

type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	in := CreateInput{Name: "Ann", Description: "Great"}

	t.Run("Unknown product", func(t *testing.T) {
		repo, products := new(MockRepository), new(MockProducts)
		products.On("GetByID", ctx, uint(42)).Return(nil, product.ErrProductNotFound)

		_, err := NewService(repo, products).Create(ctx, 42, in)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid input", func(t *testing.T) {
		_, err := NewService(new(MockRepository), new(MockProducts)).Create(ctx, 1, CreateInput{Name: "Ann"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Success", func(t *testing.T) {
		repo, products := new(MockRepository), new(MockProducts)
		products.On("GetByID", ctx, uint(1)).Return(&product.Product{ID: 1}, nil)
		repo.On("Create", ctx, uint(1), in).Return(&Review{ID: 1, ProductID: 1}, nil)

		rv, err := NewService(repo, products).Create(ctx, 1, in)
		require.NoError(t, err)
		assert.Equal(t, uint(1), rv.ID)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo, products := new(MockRepository), new(MockProducts)
	products.On("GetByID", ctx, uint(1)).Return(&product.Product{ID: 1}, nil)
	repo.On("ListByProduct", ctx, uint(1)).Return([]Review{{ID: 1}}, nil)

	reviews, err := NewService(repo, products).List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
