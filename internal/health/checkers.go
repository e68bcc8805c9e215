package health

import (
	"context"
	"errors"
	"time"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// Pinger проверяет достижимость внешней системы.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BackendChecker проверяет достижимость REST API бэкенда.
type BackendChecker struct {
	backend Pinger
	timeout time.Duration
}

// NewBackendChecker создаёт проверку бэкенда с таймаутом на пробу.
func NewBackendChecker(backend Pinger, timeout time.Duration) *BackendChecker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &BackendChecker{backend: backend, timeout: timeout}
}

// Check выполняет пробу бэкенда.
func (c *BackendChecker) Check() Check {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	err := c.backend.Ping(ctx)
	duration := time.Since(start)

	if err != nil {
		return Check{
			Name:       "backend",
			Status:     StatusUnhealthy,
			Message:    err.Error(),
			DurationMs: duration.Milliseconds(),
		}
	}
	return Check{
		Name:       "backend",
		Status:     StatusHealthy,
		DurationMs: duration.Milliseconds(),
	}
}

// SessionStoreChecker проверяет работоспособность хранилища сессий.
type SessionStoreChecker struct {
	store domain.SessionStore
}

// NewSessionStoreChecker создаёт проверку хранилища сессий.
func NewSessionStoreChecker(store domain.SessionStore) *SessionStoreChecker {
	return &SessionStoreChecker{store: store}
}

// Check обращается к хранилищу за заведомо отсутствующей сессией.
// ErrSessionNotFound — нормальный ответ живого хранилища.
func (c *SessionStoreChecker) Check() Check {
	start := time.Now()

	_, err := c.store.Get("health-probe")
	duration := time.Since(start)

	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return Check{
			Name:       "session-store",
			Status:     StatusUnhealthy,
			Message:    err.Error(),
			DurationMs: duration.Milliseconds(),
		}
	}
	return Check{
		Name:       "session-store",
		Status:     StatusHealthy,
		DurationMs: duration.Milliseconds(),
	}
}
