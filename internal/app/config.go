package app

import "time"

// Драйверы хранилища сессий.
const (
	SessionDriverMemory = "memory"
	SessionDriverRedis  = "redis"
)

// Config описывает настройки запуска витрины.
type Config struct {
	// HTTPAddr — адрес веб-сервера витрины.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера (/metrics, health-пробы).
	MetricsAddr string

	// BackendBaseURL — базовый URL REST API бэкенда.
	BackendBaseURL string

	// SessionDriver — memory или redis.
	SessionDriver string
	// SessionTTL — время жизни сессии без активности.
	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// KafkaBrokers — опциональное зеркалирование событий витрины;
	// пустой список отключает Kafka.
	KafkaBrokers []string

	// RateLimitRPS/RateLimitBurst — per-IP ограничение входящих запросов.
	RateLimitRPS   float64
	RateLimitBurst int

	// BreakerMaxFailures/BreakerResetTimeout — circuit breaker на вызовы бэкенда.
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
}

// DefaultConfig возвращает настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		BackendBaseURL:      "http://localhost:8081",
		SessionDriver:       SessionDriverMemory,
		SessionTTL:          30 * time.Minute,
		RedisAddr:           "localhost:6379",
		RateLimitRPS:        20,
		RateLimitBurst:      40,
		BreakerMaxFailures:  5,
		BreakerResetTimeout: 30 * time.Second,
	}
}
