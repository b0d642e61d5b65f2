package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов витрины
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Метрики шины событий и рендеринга
// =============================================================================

// EventsPublished - опубликованные события по имени
var EventsPublished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_events_published_total",
		Help: "Total number of events published on the event bus",
	},
	[]string{"event"},
)

// EventHandlerPanics - обработчики, завершившиеся паникой
// Паника одного обработчика не прерывает доставку остальным
var EventHandlerPanics = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_event_handler_panics_total",
		Help: "Total number of recovered event handler panics",
	},
	[]string{"event"},
)

// RenderDuration - время рендеринга фрагментов по имени view
var RenderDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "storefront_render_duration_seconds",
		Help:    "Duration of view fragment rendering in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"view"},
)

// =============================================================================
// Бизнес-метрики витрины
// =============================================================================

// BasketOperations - операции с корзиной
var BasketOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_basket_operations_total",
		Help: "Total number of basket operations",
	},
	[]string{"operation"}, // add, remove, clear
)

// OrdersPlaced - успешно оформленные заказы
var OrdersPlaced = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Total number of successfully placed orders",
	},
)

// OrdersFailed - неудачные попытки оформления заказа
var OrdersFailed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_orders_failed_total",
		Help: "Total number of failed order submissions",
	},
	[]string{"reason"}, // validation, network
)

// OrdersTotalAmount - суммарная стоимость оформленных заказов (в синапсах)
var OrdersTotalAmount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_orders_total_amount",
		Help: "Total amount of all placed orders",
	},
)

// CatalogRefreshes - обновления каталога из commerce API
var CatalogRefreshes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_catalog_refreshes_total",
		Help: "Total number of catalog refresh attempts",
	},
	[]string{"status"}, // success, failed, cache
)

// ActiveSessions - текущее количество живых сессий витрины
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "storefront_active_sessions",
		Help: "Current number of live storefront sessions",
	},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш каталога
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные события аналитики
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)
