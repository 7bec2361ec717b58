package user

import (
	"context"
	"errors"
	"testing"

	"storefront-be/internal/apperror"
	"storefront-be/internal/auth"
	"storefront-be/internal/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
	customers *MockProvisioner
	committed bool
}

func newMockRepository() *MockRepository {
	return &MockRepository{customers: new(MockProvisioner)}
}

func (m *MockRepository) Create(ctx context.Context, email, password string, role Role) (*User, error) {
	args := m.Called(ctx, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

// WithinTx hands fn the mock itself and records whether the unit of work
// would have been committed.
func (m *MockRepository) WithinTx(ctx context.Context, fn func(users Repository, customers CustomerProvisioner) error) error {
	if err := fn(m, m.customers); err != nil {
		return err
	}
	m.committed = true
	return nil
}

type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) Provision(ctx context.Context, userID uint, email string) (*customer.Customer, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()
	creds := Credentials{Email: " Test@Example.com ", Password: "password123"}

	t.Run("Success", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewService(repo)

		repo.On("Create", ctx, "test@example.com", mock.AnythingOfType("string"), RoleUser).
			Return(&User{ID: 1, Email: "test@example.com", Role: RoleUser}, nil)
		repo.customers.On("Provision", ctx, uint(1), "test@example.com").
			Return(&customer.Customer{ID: 5, UserID: 1}, nil)

		token, u, err := svc.Register(ctx, creds)
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.True(t, repo.committed)

		claims, err := auth.ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, "USER", claims.Role)

		repo.AssertExpectations(t)
		repo.customers.AssertExpectations(t)
	})

	t.Run("Password is hashed", func(t *testing.T) {
		repo := newMockRepository()
		repo.On("Create", ctx, "test@example.com", mock.MatchedBy(func(h string) bool {
			return h != creds.Password && CheckPasswordHash(creds.Password, h)
		}), RoleUser).Return(&User{ID: 1, Email: "test@example.com", Role: RoleUser}, nil)
		repo.customers.On("Provision", ctx, uint(1), "test@example.com").Return(&customer.Customer{ID: 5}, nil)

		_, _, err := NewService(repo).Register(ctx, creds)
		require.NoError(t, err)
	})

	t.Run("Invalid email", func(t *testing.T) {
		_, _, err := NewService(newMockRepository()).
			Register(ctx, Credentials{Email: "nope", Password: "password123"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Short password", func(t *testing.T) {
		_, _, err := NewService(newMockRepository()).
			Register(ctx, Credentials{Email: "a@example.com", Password: "short"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password must be at least 8")
	})

	t.Run("Email exists", func(t *testing.T) {
		repo := newMockRepository()
		repo.On("Create", ctx, "test@example.com", mock.Anything, RoleUser).Return(nil, ErrEmailExists)

		_, _, err := NewService(repo).Register(ctx, creds)
		assert.ErrorIs(t, err, ErrEmailExists)
		assert.False(t, repo.committed)
		repo.customers.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Provision fails rolls back the user", func(t *testing.T) {
		repo := newMockRepository()
		repo.On("Create", ctx, "test@example.com", mock.Anything, RoleUser).
			Return(&User{ID: 1, Email: "test@example.com", Role: RoleUser}, nil)
		repo.customers.On("Provision", ctx, uint(1), "test@example.com").Return(nil, errors.New("db down"))

		token, u, err := NewService(repo).Register(ctx, creds)
		assert.EqualError(t, err, "db down")
		assert.Empty(t, token)
		assert.Nil(t, u)
		assert.False(t, repo.committed)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "test@example.com").
			Return(&User{ID: 2, Email: "test@example.com", Password: hash, Role: RoleAdmin}, nil)

		token, u, err := NewService(repo).Login(ctx, Credentials{Email: "test@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "x@example.com").Return(nil, ErrUserNotFound)

		_, _, err := NewService(repo).Login(ctx, Credentials{Email: "x@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "test@example.com").
			Return(&User{ID: 2, Email: "test@example.com", Password: hash}, nil)

		_, _, err := NewService(repo).Login(ctx, Credentials{Email: "test@example.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
