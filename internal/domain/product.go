package domain

import "github.com/shopspring/decimal"

// Product — снимок товара каталога, каким его вернул бэкенд.
// Актуальная цена всегда живёт на бэкенде; клиент лишь наблюдает снимки.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// ProductPage — страница результатов поиска по каталогу.
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int64     `json:"totalElements"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
}
