package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

func TestHandler_Healthy(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("probe", NewSimpleChecker("probe", func() error {
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response Response
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if response.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %s", response.Version)
	}
	if len(response.Checks) != 1 {
		t.Errorf("expected 1 check, got %d", len(response.Checks))
	}
}

func TestHandler_Unhealthy(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("probe", NewSimpleChecker("probe", func() error {
		return errors.New("service unavailable")
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	var response Response
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy, got %s", response.Status)
	}
}

func TestLivenessHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	w := httptest.NewRecorder()

	LivenessHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %s", w.Body.String())
	}
}

func TestReadinessHandler_NotReady(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("probe", NewSimpleChecker("probe", func() error {
		return errors.New("not ready")
	}))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()

	handler.ReadinessHandler(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(context.Context) error { return p.err }

func TestBackendChecker(t *testing.T) {
	check := NewBackendChecker(pingerStub{}, time.Second).Check()
	if check.Status != StatusHealthy {
		t.Errorf("expected healthy backend, got %s", check.Status)
	}

	check = NewBackendChecker(pingerStub{err: domain.ErrBackendUnavailable}, time.Second).Check()
	if check.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy backend, got %s", check.Status)
	}
	if check.Message == "" {
		t.Error("expected failure message")
	}
}

type sessionStoreStub struct {
	err error
}

func (s sessionStoreStub) Save(domain.Session) error { return nil }
func (s sessionStoreStub) Get(string) (domain.Session, error) {
	return domain.Session{}, s.err
}
func (s sessionStoreStub) Delete(string) error { return nil }

func TestSessionStoreChecker(t *testing.T) {
	// Отсутствие пробной сессии — нормальный ответ живого хранилища.
	check := NewSessionStoreChecker(sessionStoreStub{err: domain.ErrSessionNotFound}).Check()
	if check.Status != StatusHealthy {
		t.Errorf("expected healthy store, got %s", check.Status)
	}

	check = NewSessionStoreChecker(sessionStoreStub{err: errors.New("redis: connection refused")}).Check()
	if check.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy store, got %s", check.Status)
	}
}
