package backend

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// RetryConfig — конфигурация повторов для идемпотентных запросов.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig возвращает конфигурацию по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
	}
}

// NoRetry отключает повторы: каждая операция выполняется один раз.
func NoRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 1}
}

// withRetry оборачивает операцию повторами с экспоненциальной задержкой.
// Повторяются только транспортные сбои; ответ бэкенда, даже ошибочный,
// считается окончательным.
func (c *Client) withRetry(ctx context.Context, endpoint string, fn func() error) func() error {
	return func() error {
		attempts := c.retry.MaxAttempts
		if attempts < 1 {
			attempts = 1
		}

		var lastErr error
		delay := c.retry.InitialDelay
		for attempt := 1; attempt <= attempts; attempt++ {
			err := fn()
			if err == nil {
				if attempt > 1 {
					c.logger.WithFields(log.Fields{
						"endpoint": endpoint,
						"attempt":  attempt,
					}).Info("backend request succeeded after retry")
				}
				return nil
			}
			lastErr = err

			if !shouldRetry(err) || attempt == attempts {
				return lastErr
			}

			c.logger.WithFields(log.Fields{
				"endpoint": endpoint,
				"attempt":  attempt,
				"delay":    delay,
				"error":    err,
			}).Warn("backend request failed, retrying")

			select {
			case <-ctx.Done():
				return lastErr
			case <-time.After(delay):
			}

			delay = time.Duration(float64(delay) * c.retry.BackoffFactor)
			if c.retry.MaxDelay > 0 && delay > c.retry.MaxDelay {
				delay = c.retry.MaxDelay
			}
		}
		return lastErr
	}
}

// shouldRetry: повторяем только отсутствие соединения. Любой ответ
// с кодом статуса — решение бэкенда, повтор его не изменит.
func shouldRetry(err error) bool {
	return errors.Is(err, domain.ErrBackendUnavailable)
}
