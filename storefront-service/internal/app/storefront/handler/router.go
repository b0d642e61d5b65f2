package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weblarek/pkg/logger"
	"weblarek/pkg/metrics"
)

// SetupRoutes настраивает маршруты Storefront Service
func SetupRoutes(storefrontHandler *StorefrontHandler, store *SessionStore) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("storefront"))
	router.Use(cors.Default())

	// Health check и метрики - без привязки к сессии
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storefront-service",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Страница и фрагменты
	pages := router.Group("/")
	pages.Use(SessionMiddleware(store))
	{
		pages.GET("", storefrontHandler.Index)                    // Полная страница витрины
		pages.GET("fragments/:name", storefrontHandler.Fragment)  // Один фрагмент
	}

	// Intent-события от браузера
	intents := router.Group("/intent")
	intents.Use(SessionMiddleware(store))
	{
		intents.POST("/preview", storefrontHandler.Preview)            // Открыть предпросмотр
		intents.POST("/modal/close", storefrontHandler.CloseModal)     // Закрыть модальное окно
		intents.POST("/basket/toggle", storefrontHandler.ToggleBasket) // Добавить/убрать из корзины
		intents.POST("/basket/open", storefrontHandler.OpenBasket)     // Открыть корзину
		intents.POST("/checkout", storefrontHandler.StartCheckout)     // Начать оформление
		intents.POST("/order/field", storefrontHandler.OrderField)     // Изменить поле заказа
		intents.POST("/order/next", storefrontHandler.OrderNext)       // Перейти к контактам
		intents.POST("/order/submit", storefrontHandler.SubmitOrder)   // Отправить заказ
		intents.POST("/catalog/retry", storefrontHandler.RetryCatalog) // Повторить загрузку каталога
	}

	return router
}
