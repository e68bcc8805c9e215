package backend

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// CircuitState — состояние circuit breaker'а.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker защищает бэкенд от шторма запросов при его недоступности.
// Пока контур открыт, вызовы завершаются domain.ErrBackendUnavailable
// без обращения к сети.
type CircuitBreaker struct {
	maxFailures  int
	resetTimeout time.Duration

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	state       CircuitState

	logger *log.Entry
	// onOpen вызывается при переходе в открытое состояние; витрина
	// публикует через него событие недоступности бэкенда.
	onOpen func()
}

// NewCircuitBreaker создаёт breaker с порогом отказов и таймаутом сброса.
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration, logger *log.Entry) *CircuitBreaker {
	if logger == nil {
		logger = log.WithField("component", "circuit-breaker")
	}
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		logger:       logger,
	}
}

// OnOpen регистрирует колбэк открытия контура.
func (cb *CircuitBreaker) OnOpen(fn func()) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onOpen = fn
}

// State возвращает текущее состояние контура.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Execute выполняет операцию через breaker. Отказом считается только
// транспортный сбой: ошибочные ответы бэкенда означают, что он жив.
func (cb *CircuitBreaker) Execute(operation string, fn func() error) error {
	if err := cb.allow(operation); err != nil {
		return err
	}

	err := fn()
	cb.record(operation, err)
	return err
}

func (cb *CircuitBreaker) allow(operation string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen {
		if time.Since(cb.lastFailure) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
			cb.logger.WithField("operation", operation).Info("circuit breaker half-open")
		} else {
			return domain.ErrBackendUnavailable
		}
	}
	return nil
}

func (cb *CircuitBreaker) record(operation string, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil && shouldRetry(err) {
		cb.failures++
		cb.lastFailure = time.Now()

		if cb.state == CircuitHalfOpen || cb.failures >= cb.maxFailures {
			wasOpen := cb.state == CircuitOpen
			cb.state = CircuitOpen
			cb.logger.WithFields(log.Fields{
				"operation": operation,
				"failures":  cb.failures,
			}).Warn("circuit breaker opened")
			if !wasOpen && cb.onOpen != nil {
				// Не держим мьютекс дольше необходимого: колбэк быстрый
				// (публикация события в шину).
				go cb.onOpen()
			}
		}
		return
	}

	if cb.state == CircuitHalfOpen {
		cb.state = CircuitClosed
		cb.logger.WithField("operation", operation).Info("circuit breaker closed")
	}
	cb.failures = 0
}
