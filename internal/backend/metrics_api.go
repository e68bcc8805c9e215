package backend

import (
	"context"
	"net/http"
)

// SalesMetrics строит отчёт по продажам за период с фильтрами по статусам,
// товарам, описаниям и пользователям.
func (c *Client) SalesMetrics(ctx context.Context, req SalesMetricsRequest) (SalesMetricsResponse, error) {
	var resp SalesMetricsResponse
	err := c.call(ctx, "metrics.orders", http.MethodPost, "/api/metrics/orders", nil, req, &resp)
	return resp, err
}

// ProductMetrics строит отчёт по товарам: сколько продано и на какую сумму.
func (c *Client) ProductMetrics(ctx context.Context, req ProductMetricsRequest) ([]ProductMetricsItem, error) {
	var items []ProductMetricsItem
	err := c.call(ctx, "metrics.products", http.MethodPost, "/api/metrics/products", nil, req, &items)
	return items, err
}
