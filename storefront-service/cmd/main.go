package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weblarek/pkg/logger"
	"weblarek/storefront-service/internal/app/storefront/config"
	"weblarek/storefront-service/internal/app/storefront/events"
	"weblarek/storefront-service/internal/app/storefront/handler"
	"weblarek/storefront-service/internal/app/storefront/infrastructure"
	shophttp "weblarek/storefront-service/internal/app/storefront/infrastructure/http"
	"weblarek/storefront-service/internal/app/storefront/infrastructure/messaging"
	"weblarek/storefront-service/internal/app/storefront/presenter"
	"weblarek/storefront-service/internal/app/storefront/processor"
	"weblarek/storefront-service/internal/app/storefront/state"
	"weblarek/storefront-service/internal/app/storefront/util"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		logger.Init("storefront-service", "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("storefront-service", cfg.Log.Level)

	// === КЛИЕНТ COMMERCE API ===
	// Единственный источник каталога и приемник заказов
	shopClient := shophttp.NewShopClient(cfg.ShopAPI.BaseURL, cfg.ShopAPI.CDNURL, cfg.ShopAPI.Timeout)

	// === ПОДКЛЮЧЕНИЕ К REDIS (опционально) ===
	// Redis хранит копию последнего загруженного каталога
	var catalogCache infrastructure.CatalogCache
	if cfg.Redis.Enabled() {
		redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		catalogCache = redisClient
		logger.Info().Msg("Successfully connected to Redis")
	} else {
		logger.Warn().Msg("Redis not configured, catalog cache disabled")
	}

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER (опционально) ===
	// События ORDER_PLACED отправляются в топик аналитики
	var producer infrastructure.MessagePublisher
	if cfg.Kafka.Enabled() {
		kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		producer = kafkaProducer
		logger.Info().Msg("Successfully initialized Kafka producer")
	} else {
		logger.Warn().Msg("Kafka not configured, order analytics disabled")
	}

	// === ЗАГРУЗКА КАТАЛОГА ===
	// Первичная загрузка с повторами и фоновое обновление по расписанию
	refresher := processor.NewCatalogRefresher(shopClient, catalogCache)
	if err := refresher.Start(context.Background(), cfg.Catalog.RefreshSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start catalog refresher")
	}
	defer refresher.Stop()

	// === ХРАНИЛИЩЕ СЕССИЙ ===
	// Каждая сессия браузера получает собственную шину, состояние
	// и presenter; каталог снимается с refresher при создании
	sessionStore := handler.NewSessionStore(func(id string) *handler.Session {
		bus := events.NewBus()
		appState := state.NewAppState(bus)
		pres := presenter.New(bus, appState, shopClient, producer)

		if products, ok := refresher.Catalog(); ok {
			pres.SetCatalog(products)
		} else {
			pres.SetCatalogError()
		}

		return &handler.Session{
			ID:        id,
			Bus:       bus,
			State:     appState,
			Presenter: pres,
		}
	}, cfg.Session.TTL)
	defer sessionStore.Close()

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS И МАРШРУТОВ ===
	storefrontHandler := handler.NewStorefrontHandler(sessionStore, refresher)
	router := handler.SetupRoutes(storefrontHandler, sessionStore)

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// === ЗАПУСК HTTP СЕРВЕРА ===
	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting Storefront Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Storefront Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Storefront Service stopped gracefully")
}
