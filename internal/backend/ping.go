package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// Ping проверяет достижимость бэкенда для health-проверок. Любой HTTP-ответ
// означает, что бэкенд жив; ошибкой считается только транспортный сбой.
// Пробы не проходят через retry и circuit breaker.
func (c *Client) Ping(ctx context.Context) error {
	err := c.callOnce(ctx, "health.ping", http.MethodGet, "/actuator/health", nil, nil, nil)
	if err != nil && errors.Is(err, domain.ErrBackendUnavailable) {
		return err
	}
	return nil
}
