package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// SearchProducts возвращает страницу каталога по фильтрам имени и описания.
func (c *Client) SearchProducts(ctx context.Context, q ProductSearchQuery) (domain.ProductPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("pagesize", strconv.Itoa(q.PageSize))
	if q.Name != "" {
		query.Set("name", q.Name)
	}
	if q.Description != "" {
		query.Set("description", q.Description)
	}

	var page domain.ProductPage
	err := c.call(ctx, "products.search", http.MethodGet, "/api/products/search", query, nil, &page)
	return page, err
}

// Products возвращает весь каталог без пагинации (фильтры в метриках).
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.call(ctx, "products.list", http.MethodGet, "/api/products", nil, nil, &products)
	return products, err
}

// CreateProduct добавляет товар в каталог (админка).
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (domain.Product, error) {
	var product domain.Product
	err := c.call(ctx, "products.create", http.MethodPost, "/api/products", nil, req, &product)
	return product, err
}

// UpdateProduct изменяет товар (админка).
func (c *Client) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (domain.Product, error) {
	var product domain.Product
	err := c.call(ctx, "products.update", http.MethodPut, fmt.Sprintf("/api/products/%d", id), nil, req, &product)
	return product, err
}

// DeleteProduct удаляет товар (админка).
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.call(ctx, "products.delete", http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}
