package collection

import (
	"context"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, params ListParams) ([]Collection, int, error)
	Get(ctx context.Context, id uint) (*Collection, error)
	Create(ctx context.Context, in Input) (*Collection, error)
	Update(ctx context.Context, id uint, in Input) (*Collection, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, params ListParams) ([]Collection, int, error) {
	params.Page, params.Limit = utils.NormalizePage(params.Page, params.Limit, utils.DefaultPageSize, utils.MaxPageSize)
	return s.repo.List(ctx, params)
}

func (s *service) Get(ctx context.Context, id uint) (*Collection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in Input) (*Collection, error) {
	if err := utils.ValidateStruct(in); err != nil {
		logger.FromCtx(ctx).Warn("invalid collection input",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *service) Update(ctx context.Context, id uint, in Input) (*Collection, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
