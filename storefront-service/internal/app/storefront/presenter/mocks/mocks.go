package mocks

import (
	"context"
	"time"

	"weblarek/storefront-service/internal/app/storefront/entity"

	"github.com/stretchr/testify/mock"
)

// MockShopAPI мок для ShopAPI
type MockShopAPI struct {
	mock.Mock
}

func (m *MockShopAPI) GetProductList(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockShopAPI) GetProductItem(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockShopAPI) PlaceOrder(ctx context.Context, order *entity.OrderDraft) (*entity.OrderResult, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OrderResult), args.Error(1)
}

// MockMessagePublisher мок для MessagePublisher (Kafka)
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCatalogCache мок для CatalogCache (Redis)
type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) SetCatalog(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	args := m.Called(ctx, products, ttl)
	return args.Error(0)
}

func (m *MockCatalogCache) GetCatalog(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
