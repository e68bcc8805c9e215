package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// AddToCart добавляет товар в корзину пользователя. Цена фиксируется
// бэкендом в момент добавления.
func (c *Client) AddToCart(ctx context.Context, req AddCartItemRequest) (domain.CartLine, error) {
	var line domain.CartLine
	err := c.call(ctx, "cart.add", http.MethodPost, "/api/cart", nil, req, &line)
	return line, err
}

// Cart возвращает строки корзины пользователя.
func (c *Client) Cart(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := c.call(ctx, "cart.list", http.MethodGet, fmt.Sprintf("/api/cart/%d", userID), nil, nil, &lines)
	return lines, err
}

// CartPriceMismatch возвращает строки, у которых зафиксированная цена
// разошлась с актуальной ценой товара. Пустой срез — расхождений нет.
func (c *Client) CartPriceMismatch(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := c.call(ctx, "cart.price_mismatch", http.MethodGet,
		fmt.Sprintf("/api/cart/price-mismatch/%d", userID), nil, nil, &lines)
	return lines, err
}

// UpdateCartItem изменяет количество в строке корзины.
func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int32) (domain.CartLine, error) {
	var line domain.CartLine
	err := c.call(ctx, "cart.update", http.MethodPut, fmt.Sprintf("/api/cart/%d", itemID), nil,
		UpdateCartItemRequest{Quantity: quantity}, &line)
	return line, err
}

// RemoveCartItem удаляет строку корзины.
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.call(ctx, "cart.remove", http.MethodDelete, fmt.Sprintf("/api/cart/%d", itemID), nil, nil, nil)
}
