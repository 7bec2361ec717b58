package review

import (
	"context"

	"storefront-be/internal/product"
	"storefront-be/internal/utils"
)

// ProductLookup is the part of the product repository reviews depend on.
type ProductLookup interface {
	GetByID(ctx context.Context, id uint) (*product.Product, error)
}

type Service interface {
	List(ctx context.Context, productID uint) ([]Review, error)
	Get(ctx context.Context, productID, reviewID uint) (*Review, error)
	Create(ctx context.Context, productID uint, in CreateInput) (*Review, error)
	Delete(ctx context.Context, productID, reviewID uint) error
}

type service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) Service {
	return &service{repo: repo, products: products}
}

func (s *service) List(ctx context.Context, productID uint) ([]Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) Get(ctx context.Context, productID, reviewID uint) (*Review, error) {
	return s.repo.Get(ctx, productID, reviewID)
}

func (s *service) Create(ctx context.Context, productID uint, in CreateInput) (*Review, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, productID, in)
}

func (s *service) Delete(ctx context.Context, productID, reviewID uint) error {
	return s.repo.Delete(ctx, productID, reviewID)
}
