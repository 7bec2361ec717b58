package tag

import (
	"context"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	TagsFor(ctx context.Context, contentType ContentType, objectID uint) ([]TaggedItem, error)
	Tag(ctx context.Context, contentType ContentType, objectID uint, in TagInput) (*TaggedItem, error)
	Untag(ctx context.Context, contentType ContentType, objectID, tagID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) TagsFor(ctx context.Context, contentType ContentType, objectID uint) ([]TaggedItem, error) {
	if !contentType.Valid() {
		return nil, ErrUnknownContentType
	}
	return s.repo.TagsFor(ctx, contentType, objectID)
}

func (s *service) Tag(ctx context.Context, contentType ContentType, objectID uint, in TagInput) (*TaggedItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Tag"),
		zap.String("content_type", string(contentType)),
		zap.Uint("object_id", objectID),
	)

	if !contentType.Valid() {
		return nil, ErrUnknownContentType
	}
	in.Label = strings.TrimSpace(in.Label)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	t, err := s.repo.GetOrCreate(ctx, in.Label)
	if err != nil {
		log.Error("failed to get or create tag", zap.Error(err))
		return nil, err
	}

	item, err := s.repo.Attach(ctx, *t, contentType, objectID)
	if err != nil {
		log.Error("failed to attach tag", zap.Error(err))
		return nil, err
	}

	log.Info("tag attached", zap.String("label", t.Label))
	return item, nil
}

func (s *service) Untag(ctx context.Context, contentType ContentType, objectID, tagID uint) error {
	if !contentType.Valid() {
		return ErrUnknownContentType
	}
	return s.repo.Detach(ctx, tagID, contentType, objectID)
}
