package collection

import (
	"context"
	"testing"

	"storefront-be/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, params ListParams) ([]Collection, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Collection), args.Int(1), args.Error(2)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Collection), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, in Input) (*Collection, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Collection), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, in Input) (*Collection, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Collection), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("List normalizes paging", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("List", ctx, ListParams{Page: 1, Limit: 20}).Return([]Collection{{ID: 1}}, 1, nil)

		items, total, err := NewService(repo).List(ctx, ListParams{Limit: -5})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, items, 1)
	})

	t.Run("Create requires title", func(t *testing.T) {
		_, err := NewService(new(MockRepository)).Create(ctx, Input{})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Create", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, Input{Title: "Snacks"}).Return(&Collection{ID: 3, Title: "Snacks"}, nil)

		c, err := NewService(repo).Create(ctx, Input{Title: "Snacks"})
		require.NoError(t, err)
		assert.Equal(t, uint(3), c.ID)
	})

	t.Run("Delete protected", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Delete", ctx, uint(1)).Return(ErrCollectionProtected)

		err := NewService(repo).Delete(ctx, 1)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})
}
