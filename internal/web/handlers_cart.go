package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

type cartView struct {
	Lines []domain.CartLine
	Total decimal.Decimal
}

func (s *Server) showCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	userID, err := s.flow.ResolveUser(apiCtx(r), sess)
	if err != nil {
		s.failRequest(w, r, err, "/")
		return
	}

	lines, err := s.api.Cart(apiCtx(r), userID)
	if err != nil {
		s.failRequest(w, r, err, "/")
		return
	}

	sess.CartCount = len(lines)
	s.saveSession(sess)

	s.render(w, r, "cart.gohtml", "Cart", cartView{
		Lines: lines,
		Total: domain.CartTotal(lines),
	})
}

// handleAddToCart добавляет товар; цену фиксирует бэкенд в момент добавления.
func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	productID, err := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
	if err != nil {
		http.Error(w, "bad product id", http.StatusBadRequest)
		return
	}
	qty, err := strconv.ParseInt(r.PostFormValue("quantity"), 10, 32)
	if err != nil || qty < 1 {
		qty = 1
	}

	sess := sessionFrom(r)
	userID, err := s.flow.ResolveUser(apiCtx(r), sess)
	if err != nil {
		s.failRequest(w, r, err, "/")
		return
	}

	_, err = s.api.AddToCart(apiCtx(r), backend.AddCartItemRequest{
		UserID:    userID,
		ProductID: productID,
		Quantity:  domain.ClampQuantity(int32(qty)),
	})
	if err != nil {
		s.failRequest(w, r, err, "/")
		return
	}

	s.refreshCartBadge(r, sess, userID)
	s.flash(sess, notify.Success("Cart", "product added"))
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// handleUpdateCartItem меняет количество в строке. Декремент на нижней
// границе не порождает сетевого вызова.
func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		http.Error(w, "bad item id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	qty, err := strconv.ParseInt(r.PostFormValue("quantity"), 10, 32)
	if err != nil {
		http.Error(w, "bad quantity", http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	if int32(qty) < domain.MinQuantity {
		s.flash(sess, notify.Info("Cart", domain.ErrQuantityAtMinimum.Error()))
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if _, err := s.api.UpdateCartItem(apiCtx(r), itemID, int32(qty)); err != nil {
		s.failRequest(w, r, err, "/cart")
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		http.Error(w, "bad item id", http.StatusBadRequest)
		return
	}

	if err := s.api.RemoveCartItem(apiCtx(r), itemID); err != nil {
		s.failRequest(w, r, err, "/cart")
		return
	}

	sess := sessionFrom(r)
	if sess.UserID != 0 {
		s.refreshCartBadge(r, sess, sess.UserID)
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// refreshCartBadge пересчитывает бейдж корзины по данным бэкенда.
// Сбой пересчёта не мешает сценарию.
func (s *Server) refreshCartBadge(r *http.Request, sess *domain.Session, userID int64) {
	lines, err := s.api.Cart(apiCtx(r), userID)
	if err != nil {
		s.logger.WithError(err).Debug("cart badge refresh failed")
		return
	}
	sess.CartCount = len(lines)
	s.saveSession(sess)
	if s.bus != nil {
		s.bus.Publish(notify.CartUpdated{UserID: userID, Items: len(lines)})
	}
}
