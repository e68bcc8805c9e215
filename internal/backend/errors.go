package backend

import (
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// APIError — нормализованный не-2xx ответ бэкенда: код статуса и сообщение
// из тела ответа (поле message) либо стандартный текст статуса.
type APIError struct {
	Status  int
	Message string
}

// Error возвращает строку вида "<status> <message>".
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// AsAPIError извлекает APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnreachable сообщает, является ли ошибка транспортной
// (нет соединения с бэкендом).
func IsUnreachable(err error) bool {
	return errors.Is(err, domain.ErrBackendUnavailable)
}

// IsNotFound — бэкенд ответил 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == 404
}

// IsUnauthorized — бэкенд ответил 401: токен отсутствует, истёк или отозван.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == 401
}
