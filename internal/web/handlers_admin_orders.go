package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

const ordersPageSize = 20

type adminOrdersView struct {
	Orders    domain.OrderPage
	Page      int
	StartDate string
	EndDate   string
	Status    string
	Statuses  []domain.OrderStatus
}

// showAdminOrders — страница заказов с фильтрами по диапазону дат
// (yyyy-MM-dd) и статусу.
func (s *Server) showAdminOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNum, _ := strconv.Atoi(q.Get("page"))
	if pageNum < 0 {
		pageNum = 0
	}

	orders, err := s.api.Orders(apiCtx(r), backend.OrderListQuery{
		Page:      pageNum,
		Size:      ordersPageSize,
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Status:    q.Get("status"),
	})
	if err != nil {
		s.failRequest(w, r, err, "/")
		return
	}

	s.render(w, r, "admin_orders.gohtml", "Orders", adminOrdersView{
		Orders:    orders,
		Page:      pageNum,
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Status:    q.Get("status"),
		Statuses:  domain.KnownStatuses(),
	})
}

type adminOrderDetailView struct {
	Order    domain.Order
	Folio    string
	Statuses []domain.OrderStatus
}

func (s *Server) showAdminOrderDetail(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "bad order id", http.StatusBadRequest)
		return
	}

	order, err := s.api.OrderByID(apiCtx(r), orderID)
	if err != nil {
		s.failRequest(w, r, err, "/admin/orders")
		return
	}

	s.render(w, r, "admin_order_detail.gohtml", "Order "+order.Folio(), adminOrderDetailView{
		Order:    order,
		Folio:    order.Folio(),
		Statuses: domain.KnownStatuses(),
	})
}

// handleUpdateOrderStatus переводит заказ в выбранный статус. Неизвестный
// статус отклоняется до обращения к бэкенду.
func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "bad order id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	status := domain.OrderStatus(r.PostFormValue("status"))
	order, err := s.api.UpdateOrderStatus(apiCtx(r), orderID, status)
	if err != nil {
		s.failRequest(w, r, err, "/admin/orders")
		return
	}

	s.flash(sessionFrom(r), notify.Success("Orders", order.Folio()+" moved to "+string(order.Status)))
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}
