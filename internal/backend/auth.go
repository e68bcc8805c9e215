package backend

import (
	"context"
	"net/http"
)

// Login обменивает учётные данные на bearer-токен.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.call(ctx, "auth.login", http.MethodPost, "/auth/login", nil,
		LoginRequest{Email: email, Password: password}, &resp)
	return resp, err
}
