package processor

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weblarek/pkg/logger"
	"weblarek/storefront-service/internal/app/storefront/entity"
	"weblarek/storefront-service/internal/app/storefront/presenter/mocks"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("storefront-test", "error", io.Discard)
	os.Exit(m.Run())
}

func intPtr(v int) *int {
	return &v
}

func testProducts() []entity.Product {
	return []entity.Product{
		{ID: "a", Title: "Товар А", Price: intPtr(100)},
		{ID: "b", Title: "Товар Б", Price: nil},
	}
}

// ==================== Refresh Tests ====================

func TestCatalogRefresher_Refresh_StoresAndCaches(t *testing.T) {
	// Arrange
	ctx := context.Background()
	api := new(mocks.MockShopAPI)
	cache := new(mocks.MockCatalogCache)

	api.On("GetProductList", ctx).Return(testProducts(), nil)
	cache.On("SetCatalog", ctx, testProducts(), mock.AnythingOfType("time.Duration")).Return(nil)

	refresher := NewCatalogRefresher(api, cache)

	// Act
	err := refresher.Refresh(ctx)

	// Assert
	require.NoError(t, err)
	catalog, loaded := refresher.Catalog()
	assert.True(t, loaded)
	assert.Equal(t, testProducts(), catalog)

	api.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCatalogRefresher_Refresh_NilCacheAllowed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	api := new(mocks.MockShopAPI)
	api.On("GetProductList", ctx).Return(testProducts(), nil)

	refresher := NewCatalogRefresher(api, nil)

	// Act
	err := refresher.Refresh(ctx)

	// Assert
	require.NoError(t, err)
	_, loaded := refresher.Catalog()
	assert.True(t, loaded)
}

func TestCatalogRefresher_Refresh_CacheWriteErrorIgnored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	api := new(mocks.MockShopAPI)
	cache := new(mocks.MockCatalogCache)

	api.On("GetProductList", ctx).Return(testProducts(), nil)
	cache.On("SetCatalog", ctx, testProducts(), mock.AnythingOfType("time.Duration")).Return(errors.New("redis error"))

	refresher := NewCatalogRefresher(api, cache)

	// Act
	err := refresher.Refresh(ctx)

	// Assert - каталог загружен, проблема кеша не всплывает
	require.NoError(t, err)
	_, loaded := refresher.Catalog()
	assert.True(t, loaded)
}

func TestCatalogRefresher_Refresh_APIDownFallsBackToCache(t *testing.T) {
	// Arrange
	ctx := context.Background()
	api := new(mocks.MockShopAPI)
	cache := new(mocks.MockCatalogCache)

	api.On("GetProductList", ctx).Return(nil, errors.New("connection refused"))
	cache.On("GetCatalog", ctx).Return(testProducts(), nil)

	refresher := NewCatalogRefresher(api, cache)

	// Act
	err := refresher.Refresh(ctx)

	// Assert - витрина поднимается из кеша
	require.NoError(t, err)
	catalog, loaded := refresher.Catalog()
	assert.True(t, loaded)
	assert.Equal(t, testProducts(), catalog)
}

func TestCatalogRefresher_Refresh_APIDownEmptyCache(t *testing.T) {
	// Arrange
	ctx := context.Background()
	api := new(mocks.MockShopAPI)
	cache := new(mocks.MockCatalogCache)

	api.On("GetProductList", ctx).Return(nil, errors.New("connection refused"))
	cache.On("GetCatalog", ctx).Return(nil, nil)

	refresher := NewCatalogRefresher(api, cache)

	// Act
	err := refresher.Refresh(ctx)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to refresh catalog")
	_, loaded := refresher.Catalog()
	assert.False(t, loaded)
}

func TestCatalogRefresher_Refresh_APIDownNoCacheConfigured(t *testing.T) {
	// Arrange
	ctx := context.Background()
	api := new(mocks.MockShopAPI)
	api.On("GetProductList", ctx).Return(nil, errors.New("connection refused"))

	refresher := NewCatalogRefresher(api, nil)

	// Act
	err := refresher.Refresh(ctx)

	// Assert
	assert.Error(t, err)
}

func TestCatalogRefresher_Refresh_KeepsPreviousCatalogOnFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	api := new(mocks.MockShopAPI)
	api.On("GetProductList", ctx).Return(testProducts(), nil).Once()
	api.On("GetProductList", ctx).Return(nil, errors.New("connection refused"))

	refresher := NewCatalogRefresher(api, nil)
	require.NoError(t, refresher.Refresh(ctx))

	// Act
	err := refresher.Refresh(ctx)

	// Assert - предыдущий каталог продолжает обслуживать сессии
	assert.Error(t, err)
	catalog, loaded := refresher.Catalog()
	assert.True(t, loaded)
	assert.Equal(t, testProducts(), catalog)
}

// ==================== Catalog Snapshot Tests ====================

func TestCatalogRefresher_Catalog_FalseBeforeFirstLoad(t *testing.T) {
	// Arrange
	refresher := NewCatalogRefresher(new(mocks.MockShopAPI), nil)

	// Act
	catalog, loaded := refresher.Catalog()

	// Assert
	assert.False(t, loaded)
	assert.Nil(t, catalog)
}

func TestCatalogRefresher_Catalog_ReturnsCopy(t *testing.T) {
	// Arrange
	ctx := context.Background()
	api := new(mocks.MockShopAPI)
	api.On("GetProductList", ctx).Return(testProducts(), nil)

	refresher := NewCatalogRefresher(api, nil)
	require.NoError(t, refresher.Refresh(ctx))

	// Act
	first, _ := refresher.Catalog()
	first[0].Title = "Изменено снаружи"
	second, _ := refresher.Catalog()

	// Assert
	assert.Equal(t, "Товар А", second[0].Title)
}

// ==================== Lifecycle Tests ====================

func TestCatalogRefresher_StartAndStop(t *testing.T) {
	// Arrange
	api := new(mocks.MockShopAPI)
	api.On("GetProductList", mock.Anything).Return(testProducts(), nil)

	refresher := NewCatalogRefresher(api, nil)

	// Act
	err := refresher.Start(context.Background(), "@every 1h")

	// Assert
	require.NoError(t, err)
	_, loaded := refresher.Catalog()
	assert.True(t, loaded)

	refresher.Stop()
}

func TestCatalogRefresher_Start_BadScheduleRejected(t *testing.T) {
	// Arrange
	refresher := NewCatalogRefresher(new(mocks.MockShopAPI), nil)

	// Act
	err := refresher.Start(context.Background(), "not a schedule")

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule catalog refresh")
}

// Стартовая загрузка с недоступным API не фатальна: cron продолжит попытки
func TestCatalogRefresher_Start_SurvivesInitialFailure(t *testing.T) {
	// Arrange
	api := new(mocks.MockShopAPI)
	api.On("GetProductList", mock.Anything).Return(nil, errors.New("connection refused"))

	refresher := NewCatalogRefresher(api, nil)

	start := time.Now()

	// Act
	err := refresher.Start(context.Background(), "@every 1h")

	// Assert - попытки с паузами, затем запуск без каталога
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 2*startupBackoff)
	_, loaded := refresher.Catalog()
	assert.False(t, loaded)

	refresher.Stop()
}
