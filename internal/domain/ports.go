package domain

import "context"

// CheckoutGateway — подмножество операций бэкенда, необходимое сценарию
// подтверждения заказа. Реализуется клиентом REST API.
type CheckoutGateway interface {
	// UserByEmail находит пользователя по email (для резолва идентификатора,
	// когда в сессии нет userId).
	UserByEmail(ctx context.Context, email string) (User, error)
	// CartPriceMismatch возвращает строки корзины, у которых зафиксированная
	// цена разошлась с актуальной ценой товара. Пустой срез — расхождений нет.
	CartPriceMismatch(ctx context.Context, userID int64) ([]CartLine, error)
	// CreateOrder атомарно создаёт заказ из текущей корзины пользователя.
	// Бэкенд тарифицирует заказ по собственным актуальным ценам.
	CreateOrder(ctx context.Context, userID int64) (Order, error)
}
