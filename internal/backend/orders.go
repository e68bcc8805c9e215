package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// CreateOrder атомарно создаёт заказ из текущей корзины пользователя.
// Бэкенд тарифицирует заказ по собственным актуальным ценам; его total
// авторитетен.
func (c *Client) CreateOrder(ctx context.Context, userID int64) (domain.Order, error) {
	var order domain.Order
	err := c.call(ctx, "orders.create", http.MethodPost,
		fmt.Sprintf("/api/orders/user/%d", userID), nil, nil, &order)
	return order, err
}

// OrderByID возвращает заказ по идентификатору.
func (c *Client) OrderByID(ctx context.Context, id int64) (domain.Order, error) {
	var order domain.Order
	err := c.call(ctx, "orders.by_id", http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, nil, &order)
	return order, err
}

// Orders возвращает страницу заказов, отфильтрованных по диапазону дат
// и статусу (админка).
func (c *Client) Orders(ctx context.Context, q OrderListQuery) (domain.OrderPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	if q.StartDate != "" {
		query.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		query.Set("endDate", q.EndDate)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}

	var page domain.OrderPage
	err := c.call(ctx, "orders.list", http.MethodGet, "/api/orders", query, nil, &page)
	return page, err
}

// UpdateOrderStatus переводит заказ в новый статус. Допустимость перехода
// проверяет бэкенд; клиент лишь отклоняет неизвестные статусы.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrUnknownStatus, status)
	}

	var order domain.Order
	err := c.call(ctx, "orders.update_status", http.MethodPut,
		fmt.Sprintf("/api/orders/%d/status/%s", id, status), nil, nil, &order)
	return order, err
}
