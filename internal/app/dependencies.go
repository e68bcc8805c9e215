package app

import (
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/checkout"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/sagafitmi/internal/metrics"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
	sessionmemory "github.com/vladislavdragonenkov/sagafitmi/internal/session/memory"
	sessionredis "github.com/vladislavdragonenkov/sagafitmi/internal/session/redis"
)

// Dependencies содержит собранные зависимости витрины.
type Dependencies struct {
	Store   domain.SessionStore
	API     *backend.Client
	Bus     *notify.Bus
	Flow    *checkout.Flow
	Metrics *metrics.StorefrontMetrics
	Logger  *log.Entry

	kafkaProducer *kafka.Producer
	redisClient   *goredis.Client
}

// NewDependencies собирает зависимости по конфигурации. Kafka опциональна:
// недоступность брокеров не мешает запуску витрины.
func NewDependencies(cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Logger:  logger,
		Metrics: metrics.NewStorefrontMetrics(),
		Bus:     notify.NewBus(logger.WithField("component", "notify-bus")),
	}

	switch cfg.SessionDriver {
	case SessionDriverRedis:
		deps.redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		deps.Store = sessionredis.NewStore(deps.redisClient, cfg.SessionTTL)
		logger.WithField("addr", cfg.RedisAddr).Info("using redis session store")
	case SessionDriverMemory, "":
		deps.Store = sessionmemory.NewStore(cfg.SessionTTL)
		logger.Info("using in-memory session store")
	default:
		return nil, fmt.Errorf("unknown session driver %q", cfg.SessionDriver)
	}

	breaker := backend.NewCircuitBreaker(cfg.BreakerMaxFailures, cfg.BreakerResetTimeout,
		logger.WithField("component", "backend-breaker"))
	breaker.OnOpen(func() {
		deps.Bus.Publish(notify.BackendUnreachable{})
	})

	deps.API = backend.NewClient(cfg.BackendBaseURL,
		logger.WithField("component", "backend-client"),
		backend.WithMetrics(deps.Metrics),
		backend.WithBreaker(breaker),
		backend.WithRetry(backend.DefaultRetryConfig()),
	)

	deps.Flow = checkout.NewFlow(deps.API, deps.Bus,
		logger.WithField("component", "checkout"), deps.Metrics)

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.kafkaProducer = producer
			mirror := kafka.NewMirror(producer, logger.WithField("component", "kafka-mirror"))
			deps.Bus.SubscribeAll(mirror.Handle)
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka event mirror initialized")
		}
	}

	return deps, nil
}

// Close освобождает внешние ресурсы.
func (d *Dependencies) Close() {
	if d.kafkaProducer != nil {
		if err := d.kafkaProducer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
}
