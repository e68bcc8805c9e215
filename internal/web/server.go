package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/checkout"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/metrics"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

// Server — веб-слой витрины: серверный рендеринг страниц каталога,
// корзины, оформления заказа и админки поверх REST API бэкенда.
type Server struct {
	store    domain.SessionStore
	api      *backend.Client
	flow     *checkout.Flow
	bus      *notify.Bus
	logger   *log.Entry
	metrics  *metrics.StorefrontMetrics
	views    *views
	limiters *ipLimiters
}

// ServerOption настраивает Server при создании.
type ServerOption func(*Server)

// WithMetrics включает учёт сессий и сценарных метрик.
func WithMetrics(m *metrics.StorefrontMetrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// WithRateLimit настраивает per-IP ограничение запросов.
func WithRateLimit(rps rate.Limit, burst int) ServerOption {
	return func(s *Server) { s.limiters = newIPLimiters(rps, burst) }
}

// NewServer собирает веб-слой. Подписывается на SessionInvalid: такая
// сессия удаляется из хранилища, следующий запрос уйдёт на /login.
func NewServer(store domain.SessionStore, api *backend.Client, flow *checkout.Flow, bus *notify.Bus, logger *log.Entry, opts ...ServerOption) *Server {
	if logger == nil {
		logger = log.WithField("component", "web")
	}

	s := &Server{
		store:  store,
		api:    api,
		flow:   flow,
		bus:    bus,
		logger: logger,
		views:  newViews(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if bus != nil {
		bus.Subscribe(notify.SessionInvalid{}.EventName(), s.onSessionInvalid)
	}
	return s
}

func (s *Server) onSessionInvalid(e notify.Event) {
	event, ok := e.(notify.SessionInvalid)
	if !ok || event.SessionID == "" {
		return
	}
	if err := s.store.Delete(event.SessionID); err != nil {
		s.logger.WithError(err).WithField("session_id", event.SessionID).
			Warn("failed to drop invalidated session")
	}
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
}

// Router собирает маршруты витрины.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.recoverPanics)
	r.Use(s.logRequests)
	if s.limiters != nil {
		r.Use(s.rateLimit)
	}
	r.Use(s.loadSession)

	r.Get("/", s.handleHome)
	r.Get("/login", s.showLogin)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Get("/register", s.showRegister)
	r.Post("/register", s.handleRegister)

	// Сценарии, требующие входа.
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/cart", s.showCart)
		r.Post("/cart/add", s.handleAddToCart)
		r.Post("/cart/items/{itemID}", s.handleUpdateCartItem)
		r.Post("/cart/items/{itemID}/delete", s.handleRemoveCartItem)

		r.Get("/checkout/confirm", s.showConfirmOrder)
		r.Post("/checkout/confirm", s.handleConfirmOrder)
	})

	// Админка. Проверка роли презентационная: реальную авторизацию
	// выполняет бэкенд по токену.
	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAuth, s.requireAdmin)

		r.Get("/products", s.showAdminProducts)
		r.Post("/products", s.handleCreateProduct)
		r.Post("/products/{productID}", s.handleUpdateProduct)
		r.Post("/products/{productID}/delete", s.handleDeleteProduct)
		r.Post("/products/{productID}/images", s.handleUploadImage)
		r.Post("/images/{imageID}/main", s.handleAssignMainImage)
		r.Post("/images/{imageID}/delete", s.handleDeleteImage)

		r.Get("/users", s.showAdminUsers)
		r.Post("/users", s.handleCreateUser)
		r.Post("/users/{userID}", s.handleUpdateUser)
		r.Post("/users/{userID}/delete", s.handleDeleteUser)

		r.Get("/orders", s.showAdminOrders)
		r.Get("/orders/{orderID}", s.showAdminOrderDetail)
		r.Post("/orders/{orderID}/status", s.handleUpdateOrderStatus)

		r.Get("/metrics/sales", s.showSalesMetrics)
		r.Post("/metrics/sales", s.showSalesMetrics)
		r.Get("/metrics/products", s.showProductMetrics)
		r.Post("/metrics/products", s.showProductMetrics)
	})

	return r
}

// HTTPServer собирает http.Server с консервативными таймаутами.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
