package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки Storefront Service
// Redis и Kafka опциональны: без них витрина работает в деградированном
// режиме (нет кеша каталога и событий аналитики)
type Config struct {
	Server  ServerConfig
	ShopAPI ShopAPIConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Catalog CatalogConfig
	Session SessionConfig
	Log     LogConfig
}

// ServerConfig - настройки HTTP сервера витрины
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// ShopAPIConfig - настройки клиента commerce API
type ShopAPIConfig struct {
	BaseURL string        // Базовый адрес API (…/api/weblarek)
	CDNURL  string        // Адрес CDN для изображений товаров
	Timeout time.Duration // Таймаут HTTP запросов к API
}

// RedisConfig - настройки кеша каталога
// Пустой Host отключает кеширование
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки событий аналитики заказов
// Пустой список брокеров отключает отправку
type KafkaConfig struct {
	Brokers []string // Брокеры Kafka (формат host:port)
	Topic   string   // Топик для событий ORDER_PLACED
}

// CatalogConfig - расписание фонового обновления каталога
type CatalogConfig struct {
	RefreshSchedule string // Cron-выражение (по умолчанию каждые 10 минут)
}

// SessionConfig - время жизни сессий витрины
type SessionConfig struct {
	TTL time.Duration // Простой сессии до удаления
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string // debug/info/warn/error
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	apiTimeout, err := time.ParseDuration(getEnv("SHOP_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_API_TIMEOUT value: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL value: %w", err)
	}

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		brokers = []string{raw}
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		ShopAPI: ShopAPIConfig{
			BaseURL: getEnv("SHOP_API_URL", "http://localhost:9000/api/weblarek"),
			CDNURL:  getEnv("SHOP_CDN_URL", "http://localhost:9000/content/weblarek"),
			Timeout: apiTimeout,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   getEnv("KAFKA_TOPIC", "order_events"),
		},
		Catalog: CatalogConfig{
			RefreshSchedule: getEnv("CATALOG_REFRESH_SCHEDULE", "@every 10m"),
		},
		Session: SessionConfig{
			TTL: sessionTTL,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Enabled сообщает, настроен ли Redis
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Enabled сообщает, настроена ли Kafka
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// getEnv получает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
