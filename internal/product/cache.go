package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	notFoundMarker = "notfound"
	notFoundTTL    = time.Minute
)

// CachedRepository is a cache-aside decorator over Repository. Only single
// product reads are cached; lists and writes go straight to the database and
// writes drop the cached entry.
type CachedRepository struct {
	Repository

	redis redis.Cmdable
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedRepository(repo Repository, rdb redis.Cmdable, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		Repository: repo,
		redis:      rdb,
		ttl:        ttl,
	}
}

func cacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *CachedRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cache"),
		zap.String("method", "GetByID"),
		zap.Uint("product_id", id),
	)
	key := cacheKey(id)

	if p, hit, err := c.lookup(ctx, key); hit {
		return p, err
	}

	// concurrent misses for the same key share one database read; the read
	// must outlive the caller that happened to start it
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		return c.load(loadCtx, key, id)
	})
	if shared {
		log.Debug("collapsed concurrent cache miss")
	}
	if err != nil {
		return nil, err
	}
	return v.(*Product), nil
}

func (c *CachedRepository) lookup(ctx context.Context, key string) (*Product, bool, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "cache"), zap.String("key", key))

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, true, ErrProductNotFound
		}

		var p Product
		if err := json.Unmarshal(data, &p); err != nil {
			log.Warn("failed to unmarshal cached product, continuing with db", zap.Error(err))
			return nil, false, nil
		}
		return &p, true, nil

	case errors.Is(err, redis.Nil):
		return nil, false, nil

	default:
		log.Warn("redis error, continuing with db", zap.Error(err))
		return nil, false, nil
	}
}

func (c *CachedRepository) load(ctx context.Context, key string, id uint) (*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "cache"), zap.String("key", key))

	p, err := c.Repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, notFoundTTL).Err(); setErr != nil {
				log.Warn("failed to cache notfound", zap.Error(setErr))
			}
		}
		return nil, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Warn("failed to marshal product", zap.Error(err))
		return p, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn("failed to cache product", zap.Error(err))
	}
	return p, nil
}

func (c *CachedRepository) invalidate(ctx context.Context, id uint) {
	if err := c.redis.Del(ctx, cacheKey(id)).Err(); err != nil {
		logger.FromCtx(ctx).Warn("failed to invalidate product cache",
			zap.Uint("product_id", id),
			zap.Error(err),
		)
	}
}

func (c *CachedRepository) Create(ctx context.Context, p *Product) (*Product, error) {
	created, err := c.Repository.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	// a "notfound" marker may exist for a recycled id
	c.invalidate(ctx, created.ID)
	return created, nil
}

func (c *CachedRepository) Update(ctx context.Context, id uint, in UpdateInput) (*Product, error) {
	p, err := c.Repository.Update(ctx, id, in)
	c.invalidate(ctx, id)
	return p, err
}

func (c *CachedRepository) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) (*Product, error) {
	p, err := c.Repository.UpdatePrice(ctx, id, price)
	c.invalidate(ctx, id)
	return p, err
}

func (c *CachedRepository) Delete(ctx context.Context, id uint) error {
	err := c.Repository.Delete(ctx, id)
	c.invalidate(ctx, id)
	return err
}
