package token

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Пакет token извлекает роли из bearer-токена для управления видимостью
// элементов интерфейса. Подпись токена здесь НЕ проверяется: проверка роли
// на клиенте носит исключительно рекомендательный характер, реальную
// авторизацию выполняет бэкенд на каждом запросе.

// ErrMalformedToken — токен не удалось разобрать как JWT.
var ErrMalformedToken = errors.New("malformed bearer token")

// Claims — payload токена без криптографической проверки.
type Claims struct {
	raw jwt.MapClaims
}

// ParseClaims декодирует payload токена. Возвращает ErrMalformedToken,
// если строка не является JWT.
func ParseClaims(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrMalformedToken
	}

	raw := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, raw); err != nil {
		return Claims{}, ErrMalformedToken
	}
	return Claims{raw: raw}, nil
}

// Subject возвращает claim sub, если он есть.
func (c Claims) Subject() string {
	sub, _ := c.raw.GetSubject()
	return sub
}

// Roles возвращает роли из payload, перебирая известные имена claim'ов
// в порядке: roles (массив), authorities (массив), role (строка),
// roles (строка через запятую), scope (строка через пробел).
func (c Claims) Roles() []string {
	if c.raw == nil {
		return nil
	}

	if roles := stringSlice(c.raw["roles"]); roles != nil {
		return roles
	}
	if roles := stringSlice(c.raw["authorities"]); roles != nil {
		return roles
	}
	if role, ok := c.raw["role"].(string); ok && role != "" {
		return []string{role}
	}
	if joined, ok := c.raw["roles"].(string); ok && joined != "" {
		return splitTrim(joined, ",")
	}
	if scope, ok := c.raw["scope"].(string); ok && scope != "" {
		return splitTrim(scope, " ")
	}
	return nil
}

// HasRole проверяет наличие роли, допуская варианты r, ROLE_r и верхний
// регистр — разные бэкенды кодируют роли по-разному.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles() {
		if r == role || r == "ROLE_"+role || r == strings.ToUpper(role) {
			return true
		}
	}
	return false
}

// IsAdmin — видимость админ-меню. Рекомендательная проверка, не авторизация.
func (c Claims) IsAdmin() bool {
	return c.HasRole("ADMIN")
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
