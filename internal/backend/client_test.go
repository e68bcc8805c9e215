package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, log.WithField("component", "test"), opts...)
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	ctx := WithToken(context.Background(), "tok-123")
	if _, err := client.Cart(ctx, 7); err != nil {
		t.Fatalf("cart request failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	if _, err := client.Products(context.Background()); err != nil {
		t.Fatalf("products request failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_NormalizesBackendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"cart is locked"}`))
	}))

	_, err := client.CreateOrder(context.Background(), 7)
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "cart is locked" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
	if err.Error() != "409 cart is locked" {
		t.Fatalf("expected '409 cart is locked', got %q", err.Error())
	}
}

func TestClient_FallsBackToStatusText(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.UserByID(context.Background(), 1)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Internal Server Error" {
		t.Fatalf("expected status text fallback, got %q", apiErr.Message)
	}
}

func TestClient_TransportFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // соединения больше нет

	client := NewClient(srv.URL, nil)
	_, err := client.Cart(context.Background(), 7)
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if !IsUnreachable(err) {
		t.Fatal("IsUnreachable should report true")
	}
}

func TestClient_DecodesPriceMismatch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cart/price-mismatch/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"userId":7,"quantity":3,"currentPrice":10,
			 "product":{"id":10,"name":"Proteína vegetal","description":"500g","price":12}}
		]`))
	}))

	lines, err := client.CartPriceMismatch(context.Background(), 7)
	if err != nil {
		t.Fatalf("price mismatch failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if !line.CapturedPrice.Equal(decimalFromString(t, "10")) {
		t.Errorf("expected captured price 10, got %s", line.CapturedPrice)
	}
	if !line.Product.Price.Equal(decimalFromString(t, "12")) {
		t.Errorf("expected live price 12, got %s", line.Product.Price)
	}
	if !line.HasPriceDrift() {
		t.Error("expected drift on decoded line")
	}
}

func TestClient_OrdersQueryParams(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("size") != "10" {
			t.Errorf("unexpected paging params: %v", q)
		}
		if q.Get("startDate") != "2026-03-01" || q.Get("endDate") != "2026-03-14" {
			t.Errorf("unexpected date params: %v", q)
		}
		if q.Get("status") != "NEW" {
			t.Errorf("unexpected status param: %v", q)
		}
		_, _ = w.Write([]byte(`{"content":[],"totalPages":0,"totalElements":0}`))
	}))

	_, err := client.Orders(context.Background(), OrderListQuery{
		Page:      2,
		Size:      10,
		StartDate: "2026-03-01",
		EndDate:   "2026-03-14",
		Status:    "NEW",
	})
	if err != nil {
		t.Fatalf("orders request failed: %v", err)
	}
}

func TestClient_UpdateOrderStatusRejectsUnknown(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.UpdateOrderStatus(context.Background(), 1, domain.OrderStatus("SHIPPED"))
	if !errors.Is(err, domain.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
	if called {
		t.Fatal("unknown status must not reach the backend")
	}
}

func TestClient_RetriesIdempotentGet(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			// Обрываем соединение, имитируя транспортный сбой.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Error("hijacking not supported")
				return
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Errorf("hijack failed: %v", err)
				return
			}
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil, WithRetry(RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}))

	if _, err := client.Cart(context.Background(), 7); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestClient_DoesNotRetryWrites(t *testing.T) {
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}), WithRetry(DefaultRetryConfig()))

	_, err := client.CreateOrder(context.Background(), 7)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt for POST, got %d", attempts)
	}
}
