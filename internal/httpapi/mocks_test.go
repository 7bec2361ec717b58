package httpapi

import (
	"context"

	"storefront-be/internal/address"
	"storefront-be/internal/cart"
	"storefront-be/internal/collection"
	"storefront-be/internal/customer"
	"storefront-be/internal/review"
	"storefront-be/internal/tag"
	"storefront-be/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in user.Credentials) (string, *user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, in user.Credentials) (string, *user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) List(ctx context.Context, params collection.ListParams) ([]collection.Collection, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]collection.Collection), args.Int(1), args.Error(2)
}

func (m *MockCollectionService) Get(ctx context.Context, id uint) (*collection.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionService) Create(ctx context.Context, in collection.Input) (*collection.Collection, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionService) Update(ctx context.Context, id uint, in collection.Input) (*collection.Collection, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, productID uint) ([]review.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, productID, reviewID uint) (*review.Review, error) {
	args := m.Called(ctx, productID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, productID uint, in review.CreateInput) (*review.Review, error) {
	args := m.Called(ctx, productID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, productID, reviewID uint) error {
	return m.Called(ctx, productID, reviewID).Error(0)
}

type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) TagsFor(ctx context.Context, contentType tag.ContentType, objectID uint) ([]tag.TaggedItem, error) {
	args := m.Called(ctx, contentType, objectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tag.TaggedItem), args.Error(1)
}

func (m *MockTagService) Tag(ctx context.Context, contentType tag.ContentType, objectID uint, in tag.TagInput) (*tag.TaggedItem, error) {
	args := m.Called(ctx, contentType, objectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tag.TaggedItem), args.Error(1)
}

func (m *MockTagService) Untag(ctx context.Context, contentType tag.ContentType, objectID, tagID uint) error {
	return m.Called(ctx, contentType, objectID, tagID).Error(0)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Create(ctx context.Context) (*cart.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCartService) ListItems(ctx context.Context, cartID uuid.UUID) ([]cart.CartItem, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, cartID uuid.UUID, in cart.AddItemInput) (*cart.CartItem, error) {
	args := m.Called(ctx, cartID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, in cart.UpdateItemInput) (*cart.CartItem, error) {
	args := m.Called(ctx, cartID, itemID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Provision(ctx context.Context, userID uint, email string) (*customer.Customer, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Me(ctx context.Context, userID uint) (*customer.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) UpdateMe(ctx context.Context, userID uint, in customer.UpdateInput) (*customer.Customer, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context, params customer.ListParams) ([]customer.Customer, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]customer.Customer), args.Int(1), args.Error(2)
}

func (m *MockCustomerService) SetMembership(ctx context.Context, id uint, ms customer.Membership) (*customer.Customer, error) {
	args := m.Called(ctx, id, ms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) List(ctx context.Context, userID uint) ([]address.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

func (m *MockAddressService) Create(ctx context.Context, userID uint, in address.CreateInput) (*address.Address, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Delete(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}
