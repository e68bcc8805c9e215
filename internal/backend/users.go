package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// UserByEmail находит пользователя по email.
func (c *Client) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	query := url.Values{"email": {email}}
	var user domain.User
	err := c.call(ctx, "users.by_email", http.MethodGet, "/api/users/by-email", query, nil, &user)
	return user, err
}

// UserByID возвращает пользователя по идентификатору.
func (c *Client) UserByID(ctx context.Context, id int64) (domain.User, error) {
	var user domain.User
	err := c.call(ctx, "users.by_id", http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, nil, &user)
	return user, err
}

// Users возвращает всех пользователей (админка).
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := c.call(ctx, "users.list", http.MethodGet, "/api/users", nil, nil, &users)
	return users, err
}

// CreateUser регистрирует нового пользователя.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (domain.User, error) {
	var user domain.User
	err := c.call(ctx, "users.create", http.MethodPost, "/api/users", nil, req, &user)
	return user, err
}

// UpdateUser изменяет пользователя (админка).
func (c *Client) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (domain.User, error) {
	var user domain.User
	err := c.call(ctx, "users.update", http.MethodPut, fmt.Sprintf("/api/users/%d", id), nil, req, &user)
	return user, err
}

// DeleteUser удаляет пользователя (админка).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.call(ctx, "users.delete", http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil, nil)
}
