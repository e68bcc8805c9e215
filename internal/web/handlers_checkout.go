package web

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sagafitmi/internal/checkout"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

type confirmView struct {
	Lines         []domain.CartLine
	OriginalTotal decimal.Decimal
	Preview       checkout.Preview
}

type orderResultView struct {
	Order domain.Order
	Folio string
	// Mismatches — расхождения цен, найденные после оформления;
	// чисто информационные.
	Mismatches []domain.CartLine
}

// showConfirmOrder — диалог подтверждения: состав корзины, найденные
// расхождения цен и скорректированный итог.
func (s *Server) showConfirmOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	userID, err := s.flow.ResolveUser(apiCtx(r), sess)
	if err != nil {
		s.failRequest(w, r, err, "/cart")
		return
	}

	lines, err := s.api.Cart(apiCtx(r), userID)
	if err != nil {
		s.failRequest(w, r, err, "/cart")
		return
	}
	if len(lines) == 0 {
		s.flash(sess, notify.Info("Checkout", domain.ErrEmptyCart.Error()))
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	original := domain.CartTotal(lines)
	preview, err := s.flow.PrepareConfirmation(apiCtx(r), sess, original)
	if err != nil {
		s.failRequest(w, r, err, "/cart")
		return
	}
	if preview.Degraded {
		s.flash(sess, notify.Warning("Checkout", "price check unavailable, totals may be out of date"))
	}
	s.saveSession(sess)

	s.render(w, r, "confirm.gohtml", "Confirm order", confirmView{
		Lines:         lines,
		OriginalTotal: original,
		Preview:       preview,
	})
}

// handleConfirmOrder создаёт заказ. Ошибка возвращает пользователя в диалог
// подтверждения с сохранённой корзиной; успех показывает результат с
// итогом бэкенда.
func (s *Server) handleConfirmOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	confirmation, err := s.flow.ConfirmOrder(apiCtx(r), sess)
	if err != nil {
		s.failRequest(w, r, err, "/checkout/confirm")
		return
	}
	s.saveSession(sess)

	s.render(w, r, "order_result.gohtml", "Order confirmed", orderResultView{
		Order:      confirmation.Order,
		Folio:      confirmation.Order.Folio(),
		Mismatches: confirmation.Mismatches,
	})
}
