package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает статусы заказа, которыми оперирует бэкенд.
type OrderStatus string

const (
	// OrderStatusNew — заказ создан из корзины, обработка ещё не началась.
	OrderStatusNew OrderStatus = "NEW"
	// OrderStatusProcessing — заказ взят в обработку.
	OrderStatusProcessing OrderStatus = "PROCESSING"
	// OrderStatusCompleted — заказ исполнен.
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// KnownStatuses перечисляет статусы в порядке отображения в админке.
func KnownStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusNew,
		OrderStatusProcessing,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// Valid проверяет, что статус известен клиенту. Проверка носит
// презентационный характер: переходами статусов управляет бэкенд.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderLine — позиция заказа. Price — цена, по которой позиция была
// фактически тарифицирована бэкендом при создании заказа.
type OrderLine struct {
	Product  Product         `json:"product"`
	Quantity int32           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Subtotal возвращает стоимость позиции.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt32(l.Quantity))
}

// Order — заказ в том виде, в каком его вернул бэкенд. Total бэкенда
// авторитетен и замещает любые клиентские оценки.
type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []OrderLine     `json:"items"`
}

// Folio формирует человекочитаемый номер заказа вида ODRS-yymmdd-<id>.
func (o Order) Folio() string {
	return fmt.Sprintf("ODRS-%s-%d", o.CreatedAt.Format("060102"), o.ID)
}

// OrderPage — страница списка заказов в админке.
type OrderPage struct {
	Content       []Order `json:"content"`
	TotalPages    int     `json:"totalPages"`
	TotalElements int64   `json:"totalElements"`
}
