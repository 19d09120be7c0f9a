package service

import (
	"context"
	"fmt"
	"time"

	"shophub/internal/broker"
	"shophub/internal/models"
	"shophub/internal/redisclient"
	"shophub/internal/store"
	"shophub/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService serves product reads through the Redis cache and owns the
// sample-data seeding used to bootstrap a fresh store.
type CatalogService struct {
	store     *store.Store
	redis     *redisclient.Client
	publisher *broker.EventPublisher
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	st *store.Store,
	redis *redisclient.Client,
	publisher *broker.EventPublisher,
	cacheTTL time.Duration,
) *CatalogService {
	return &CatalogService{
		store:     st,
		redis:     redis,
		publisher: publisher,
		cacheTTL:  cacheTTL,
		logger:    util.GetLogger(),
	}
}

// ListProducts returns products filtered by category and search. Only the
// unfiltered listing is cached; filtered queries go straight to Postgres.
func (cs *CatalogService) ListProducts(ctx context.Context, category, search string) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	if category == "" && search == "" {
		cached, err := cs.redis.GetProductList(ctx)
		if err != nil {
			cs.logger.Warn("Product list cache read failed", zap.Error(err))
		} else if cached != nil {
			util.CatalogCacheHits.Inc()
			return cached, nil
		}
		util.CatalogCacheMisses.Inc()

		products, err := cs.store.GetProducts(ctx, "", "")
		if err != nil {
			return nil, err
		}
		if err := cs.redis.SetProductList(ctx, products, cs.cacheTTL); err != nil {
			cs.logger.Warn("Product list cache write failed", zap.Error(err))
		}
		return products, nil
	}

	return cs.store.GetProducts(ctx, category, search)
}

// GetProduct returns one product, preferring the cache.
func (cs *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	cached, err := cs.redis.GetProduct(ctx, id)
	if err != nil {
		cs.logger.Warn("Product cache read failed", zap.Int64("product_id", id), zap.Error(err))
	} else if cached != nil {
		util.CatalogCacheHits.Inc()
		return cached, nil
	}
	util.CatalogCacheMisses.Inc()

	product, err := cs.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := cs.redis.SetProduct(ctx, product, cs.cacheTTL); err != nil {
		cs.logger.Warn("Product cache write failed", zap.Int64("product_id", id), zap.Error(err))
	}
	return product, nil
}

// SeedProducts loads the sample catalog and returns the inserted count.
func (cs *CatalogService) SeedProducts(ctx context.Context) (int, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.SeedProducts")
	defer span.End()

	count, err := cs.store.InsertProducts(ctx, sampleProducts())
	if err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}

	util.ProductsSeededTotal.Add(float64(count))
	cs.logger.Info("Sample catalog seeded", zap.Int("count", count))

	if err := cs.redis.InvalidateCatalog(ctx); err != nil {
		cs.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}

	event := &models.CatalogSeededEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCatalogSeeded,
			Timestamp: time.Now(),
		},
		Count: count,
	}
	if err := cs.publisher.PublishCatalogSeeded(ctx, event); err != nil {
		cs.logger.Error("Failed to publish CatalogSeeded event", zap.Error(err))
	}

	return count, nil
}
