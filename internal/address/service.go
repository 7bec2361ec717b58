package address

import (
	"context"

	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

// CustomerLookup resolves the customer profile behind an authenticated user.
type CustomerLookup interface {
	GetByUserID(ctx context.Context, userID uint) (*customer.Customer, error)
}

type Service interface {
	List(ctx context.Context, userID uint) ([]Address, error)
	Create(ctx context.Context, userID uint, in CreateInput) (*Address, error)
	Delete(ctx context.Context, userID, id uint) error
}

type service struct {
	repo      Repository
	customers CustomerLookup
}

func NewService(repo Repository, customers CustomerLookup) Service {
	return &service{repo: repo, customers: customers}
}

func (s *service) List(ctx context.Context, userID uint) ([]Address, error) {
	c, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, c.ID)
}

func (s *service) Create(ctx context.Context, userID uint, in CreateInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("user_id", userID),
	)

	if err := utils.ValidateStruct(in); err != nil {
		log.Warn("invalid address input", zap.Error(err))
		return nil, err
	}

	c, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr := &Address{
		CustomerID: c.ID,
		Street:     in.Street,
		City:       in.City,
		Zip:        in.Zip,
	}
	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}

	log.Info("address created", zap.Uint("address_id", addr.ID))
	return addr, nil
}

func (s *service) Delete(ctx context.Context, userID, id uint) error {
	c, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID, id)
}
