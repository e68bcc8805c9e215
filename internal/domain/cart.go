package domain

import "github.com/shopspring/decimal"

// MinQuantity — нижняя граница количества в строке корзины.
// Декремент на этой границе не выполняется и не порождает сетевой вызов.
const MinQuantity int32 = 1

// CartLine — строка корзины пользователя. CapturedPrice фиксируется в момент
// добавления товара и может устареть относительно Product.Price.
type CartLine struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"userId"`
	Product  Product `json:"product"`
	Quantity int32   `json:"quantity"`
	// CapturedPrice — цена на момент добавления в корзину. В ответах бэкенда
	// поле исторически называется currentPrice.
	CapturedPrice decimal.Decimal `json:"currentPrice"`
}

// DisplayPrice возвращает цену, которую показываем в корзине:
// зафиксированную, а при её отсутствии — цену из снимка товара.
func (l CartLine) DisplayPrice() decimal.Decimal {
	if l.CapturedPrice.IsZero() {
		return l.Product.Price
	}
	return l.CapturedPrice
}

// Subtotal — зафиксированная цена, умноженная на количество.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.DisplayPrice().Mul(decimal.NewFromInt32(l.Quantity))
}

// PriceDrift — разница между актуальной ценой товара и зафиксированной.
// Положительное значение означает подорожание.
func (l CartLine) PriceDrift() decimal.Decimal {
	return l.Product.Price.Sub(l.DisplayPrice())
}

// HasPriceDrift сообщает, расходится ли зафиксированная цена с актуальной.
func (l CartLine) HasPriceDrift() bool {
	return !l.PriceDrift().IsZero()
}

// CartTotal суммирует строки корзины по зафиксированным ценам.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ClampQuantity приводит требуемое количество к допустимому диапазону.
func ClampQuantity(qty int32) int32 {
	if qty < MinQuantity {
		return MinQuantity
	}
	return qty
}
