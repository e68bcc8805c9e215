package backend

import "github.com/shopspring/decimal"

// LoginRequest — тело POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — bearer-токен, выданный бэкендом.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType,omitempty"`
}

// CreateUserRequest — тело POST /api/users. Role опциональна: регистрация
// с витрины создаёт обычного пользователя, админка может указать роль.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserRequest — тело PUT /api/users/{id}. Пустые поля не изменяются.
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ProductRequest — тело POST/PUT /api/products.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductSearchQuery — параметры GET /api/products/search.
type ProductSearchQuery struct {
	Page        int
	PageSize    int
	Name        string
	Description string
}

// AddCartItemRequest — тело POST /api/cart.
type AddCartItemRequest struct {
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

// UpdateCartItemRequest — тело PUT /api/cart/{itemId}.
type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}

// OrderListQuery — параметры GET /api/orders. Даты в формате yyyy-MM-dd:
// бэкенд сам применяет 00:00:00 к началу и 23:59:59 к концу диапазона.
type OrderListQuery struct {
	Page      int
	Size      int
	StartDate string
	EndDate   string
	Status    string
}

// ProductImage — загруженное изображение товара.
type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	URL       string `json:"url"`
	MainImage bool   `json:"mainImage"`
}

// SalesMetricsRequest — тело POST /api/metrics/orders. Пустые срезы
// опускаются: бэкенд трактует отсутствие фильтра как "все".
type SalesMetricsRequest struct {
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	Statuses            []string `json:"statuses,omitempty"`
	ProductIDs          []int64  `json:"productIds,omitempty"`
	ProductDescriptions []string `json:"productDescriptions,omitempty"`
	UserIDs             []int64  `json:"userIds,omitempty"`
}

// SalesMetricsItem — строка отчёта по продажам.
type SalesMetricsItem struct {
	OrderID            int64           `json:"orderId"`
	OrderStatus        string          `json:"orderStatus"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	Price              decimal.Decimal `json:"price"`
	Quantity           int32           `json:"quantity"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

// SalesMetricsResponse — отчёт по продажам с общим итогом.
type SalesMetricsResponse struct {
	Items      []SalesMetricsItem `json:"items"`
	GrandTotal decimal.Decimal    `json:"grandTotal"`
}

// ProductMetricsRequest — тело POST /api/metrics/products.
// SortBy — quantity или amount; Top ограничивает размер выборки (0 — без лимита).
type ProductMetricsRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	SortBy    string `json:"sortBy"`
	Top       int    `json:"top,omitempty"`
}

// ProductMetricsItem — строка отчёта по товарам.
type ProductMetricsItem struct {
	ProductID    int64           `json:"productId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	QuantitySold int64           `json:"quantitySold"`
	AmountSold   decimal.Decimal `json:"amountSold"`
}
