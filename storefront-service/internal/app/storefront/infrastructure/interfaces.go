package infrastructure

import (
	"context"
	"time"

	"weblarek/storefront-service/internal/app/storefront/entity"
)

// ShopAPI - клиент commerce API: каталог и оформление заказов
type ShopAPI interface {
	GetProductList(ctx context.Context) ([]entity.Product, error)
	GetProductItem(ctx context.Context, id string) (*entity.Product, error)
	PlaceOrder(ctx context.Context, order *entity.OrderDraft) (*entity.OrderResult, error)
}

// MessagePublisher - издатель событий аналитики заказов
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CatalogCache - кеш последнего успешно загруженного каталога
// Хранит копию данных commerce API, не состояние приложения
type CatalogCache interface {
	SetCatalog(ctx context.Context, products []entity.Product, ttl time.Duration) error
	GetCatalog(ctx context.Context) ([]entity.Product, error)
	Close() error
}

// CatalogSource - поставщик текущего каталога для новых сессий витрины
type CatalogSource interface {
	Catalog() ([]entity.Product, bool)
}
