package customer

import (
	"context"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Provision(ctx context.Context, userID uint, email string) (*Customer, error)
	Me(ctx context.Context, userID uint) (*Customer, error)
	UpdateMe(ctx context.Context, userID uint, in UpdateInput) (*Customer, error)
	List(ctx context.Context, params ListParams) ([]Customer, int, error)
	SetMembership(ctx context.Context, id uint, m Membership) (*Customer, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Provision(ctx context.Context, userID uint, email string) (*Customer, error) {
	return s.repo.Provision(ctx, userID, email)
}

func (s *service) Me(ctx context.Context, userID uint) (*Customer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) UpdateMe(ctx context.Context, userID uint, in UpdateInput) (*Customer, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if in.BirthDate != nil && in.BirthDate.After(s.now()) {
		return nil, ErrBirthDateInFuture
	}
	return s.repo.Update(ctx, userID, in)
}

func (s *service) List(ctx context.Context, params ListParams) ([]Customer, int, error) {
	params.Page, params.Limit = utils.NormalizePage(params.Page, params.Limit, DefaultPageSize, utils.MaxPageSize)
	return s.repo.List(ctx, params)
}

func (s *service) SetMembership(ctx context.Context, id uint, m Membership) (*Customer, error) {
	if !m.Valid() {
		return nil, ErrInvalidMembership
	}

	c, err := s.repo.SetMembership(ctx, id, m)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("membership changed",
		zap.Uint("customer_id", id),
		zap.String("membership", string(m)),
	)
	return c, nil
}
