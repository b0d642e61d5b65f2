package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"weblarek/pkg/logger"
	"weblarek/pkg/metrics"
	"weblarek/storefront-service/internal/app/storefront/entity"
	"weblarek/storefront-service/internal/app/storefront/infrastructure"
)

const (
	startupAttempts = 3
	startupBackoff  = 2 * time.Second
	catalogCacheTTL = time.Hour
)

// CatalogRefresher загружает каталог из commerce API при старте
// и по расписанию держит его свежим. Новые сессии витрины получают
// каталог отсюда. При недоступном API используется копия из Redis;
// если каталога нет ниоткуда, страница показывает повторяемую ошибку
type CatalogRefresher struct {
	api   infrastructure.ShopAPI
	cache infrastructure.CatalogCache // nil, если Redis не настроен
	cron  *cron.Cron

	mu      sync.RWMutex
	catalog []entity.Product
	loaded  bool
}

func NewCatalogRefresher(api infrastructure.ShopAPI, cache infrastructure.CatalogCache) *CatalogRefresher {
	return &CatalogRefresher{
		api:   api,
		cache: cache,
		cron:  cron.New(),
	}
}

// Start выполняет первичную загрузку с повторными попытками
// и запускает фоновое обновление по cron-расписанию.
// Неудача первичной загрузки не фатальна: cron продолжит попытки
func (r *CatalogRefresher) Start(ctx context.Context, schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := r.Refresh(refreshCtx); err != nil {
			logger.Error().Err(err).Msg("scheduled catalog refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}

	for attempt := 1; attempt <= startupAttempts; attempt++ {
		if err := r.Refresh(ctx); err != nil {
			logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_attempts", startupAttempts).
				Msg("initial catalog load failed")
			time.Sleep(startupBackoff)
			continue
		}
		break
	}

	r.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("catalog refresher started")
	return nil
}

// Refresh загружает каталог из API; при сбое пробует кеш Redis
func (r *CatalogRefresher) Refresh(ctx context.Context) error {
	products, err := r.api.GetProductList(ctx)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues("failed").Inc()

		if cached := r.fromCache(ctx); cached != nil {
			metrics.CatalogRefreshes.WithLabelValues("cache").Inc()
			r.store(cached)
			logger.Warn().Err(err).Msg("commerce API unavailable, serving cached catalog")
			return nil
		}

		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	metrics.CatalogRefreshes.WithLabelValues("success").Inc()
	r.store(products)

	if r.cache != nil {
		if err := r.cache.SetCatalog(ctx, products, catalogCacheTTL); err != nil {
			// Каталог уже загружен, проблемы с кешем не критичны
			logger.Warn().Err(err).Msg("failed to cache catalog")
		}
	}

	logger.Info().Int("products", len(products)).Msg("catalog refreshed")
	return nil
}

// Catalog возвращает снимок последнего загруженного каталога
// Второе значение false, пока каталог ни разу не был получен
func (r *CatalogRefresher) Catalog() ([]entity.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return nil, false
	}

	out := make([]entity.Product, len(r.catalog))
	copy(out, r.catalog)
	return out, true
}

// Stop останавливает фоновое обновление
func (r *CatalogRefresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("catalog refresher stopped")
}

func (r *CatalogRefresher) store(products []entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = products
	r.loaded = true
}

func (r *CatalogRefresher) fromCache(ctx context.Context) []entity.Product {
	if r.cache == nil {
		return nil
	}

	products, err := r.cache.GetCatalog(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read catalog cache")
		return nil
	}
	return products
}
