package product

import (
	"context"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	minUnitPrice = decimal.NewFromInt(1)
	maxUnitPrice = decimal.RequireFromString("9999.99")
)

type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, in CreateInput) (*Product, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*Product, error)
	UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validPrice(p decimal.Decimal) bool {
	return p.GreaterThanOrEqual(minUnitPrice) && p.LessThanOrEqual(maxUnitPrice)
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params.Page, params.Limit = utils.NormalizePage(params.Page, params.Limit, utils.DefaultPageSize, utils.MaxPageSize)

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items: items,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if err := utils.ValidateStruct(in); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, err
	}
	if !validPrice(in.UnitPrice) {
		return nil, ErrInvalidPrice
	}

	slug := in.Slug
	if slug == "" {
		slug = utils.Slugify(in.Title)
	}

	return s.repo.Create(ctx, &Product{
		Title:        in.Title,
		Slug:         slug,
		Description:  in.Description,
		UnitPrice:    in.UnitPrice.Round(2),
		Inventory:    in.Inventory,
		CollectionID: in.CollectionID,
	})
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (*Product, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if in.UnitPrice != nil {
		if !validPrice(*in.UnitPrice) {
			return nil, ErrInvalidPrice
		}
		rounded := in.UnitPrice.Round(2)
		in.UnitPrice = &rounded
	}
	if in.Slug != nil && *in.Slug == "" && in.Title != nil {
		in.Slug = utils.StrPtr(utils.Slugify(*in.Title))
	}

	return s.repo.Update(ctx, id, in)
}

func (s *service) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) (*Product, error) {
	if !validPrice(price) {
		return nil, ErrInvalidPrice
	}
	return s.repo.UpdatePrice(ctx, id, price.Round(2))
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
