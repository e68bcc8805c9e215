package domain

import "errors"

var (
	// ErrUserUnresolved — не удалось определить пользователя ни по сессии,
	// ни по сохранённому email; создание заказа прерывается до сети.
	ErrUserUnresolved = errors.New("could not resolve user")
	// ErrSessionNotFound — сессия отсутствует или истекла.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotAuthenticated — операция требует входа в систему.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrQuantityAtMinimum — количество уже на нижней границе, декремент невозможен.
	ErrQuantityAtMinimum = errors.New("quantity already at minimum")
	// ErrEmptyCart — попытка оформить заказ из пустой корзины.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrBackendUnavailable — бэкенд недоступен (транспортная ошибка).
	ErrBackendUnavailable = errors.New("could not connect to backend")
	// ErrUnknownStatus — статус заказа не известен клиенту.
	ErrUnknownStatus = errors.New("unknown order status")
)

// IsAdvisory сообщает, можно ли показать ошибку как некритичное уведомление,
// не блокируя сценарий. Сейчас это только недоступность бэкенда при
// справочных запросах.
func IsAdvisory(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}
