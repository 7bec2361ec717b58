package cart

import (
	"context"
	"errors"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductLookup is the part of the product repository the cart depends on.
type ProductLookup interface {
	GetByID(ctx context.Context, id uint) (*product.Product, error)
}

type Service interface {
	Create(ctx context.Context) (*Cart, error)
	Get(ctx context.Context, id uuid.UUID) (*Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]CartItem, error)
	AddItem(ctx context.Context, cartID uuid.UUID, in AddItemInput) (*CartItem, error)
	UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, in UpdateItemInput) (*CartItem, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID uint) error
}

type service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Create(ctx context.Context) (*Cart, error) {
	c, err := s.repo.Create(ctx, uuid.New())
	if err != nil {
		return nil, err
	}
	logger.FromCtx(ctx).Info("cart created", zap.String("cart_id", c.ID.String()))
	return c, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Cart, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ensureCart(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCartNotFound
	}
	return nil
}

func (s *service) ListItems(ctx context.Context, cartID uuid.UUID) ([]CartItem, error) {
	if err := s.ensureCart(ctx, cartID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, cartID)
}

// AddItem increments the quantity when the product is already in the cart.
func (s *service) AddItem(ctx context.Context, cartID uuid.UUID, in AddItemInput) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("cart_id", cartID.String()),
		zap.Uint("product_id", in.ProductID),
	)

	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.ensureCart(ctx, cartID); err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			log.Warn("product not found")
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	itemID, err := s.repo.UpsertItem(ctx, cartID, in.ProductID, in.Quantity)
	if err != nil {
		log.Error("failed to add item", zap.Error(err))
		return nil, err
	}

	return s.repo.GetItem(ctx, cartID, itemID)
}

func (s *service) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, in UpdateItemInput) (*CartItem, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItemQuantity(ctx, cartID, itemID, in.Quantity); err != nil {
		return nil, err
	}
	return s.repo.GetItem(ctx, cartID, itemID)
}

func (s *service) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	return s.repo.RemoveItem(ctx, cartID, itemID)
}
