package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/checkout"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
	"github.com/vladislavdragonenkov/sagafitmi/internal/session/memory"
)

func newBareServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()

	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[],"totalPages":0,"totalElements":0,"page":0,"size":12}`))
	}))
	t.Cleanup(backendSrv.Close)

	logger := log.WithField("component", "web-test")
	api := backend.NewClient(backendSrv.URL, logger)
	store := memory.NewStore(time.Hour)
	bus := notify.NewBus(logger)
	flow := checkout.NewFlow(api, bus, logger, nil)

	return NewServer(store, api, flow, bus, logger, opts...)
}

func TestRequestID_SetOnResponse(t *testing.T) {
	srv := newBareServer(t)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header on response")
	}
}

func TestRequestID_EchoesClientValue(t *testing.T) {
	srv := newBareServer(t)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/", nil)
	req.Header.Set("X-Request-ID", "req-known")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if got := resp.Header.Get("X-Request-ID"); got != "req-known" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	srv := newBareServer(t, WithRateLimit(1, 1))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	// Первый запрос съедает burst, второй упирается в лимит.
	first, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = first.Body.Close()

	second, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = second.Body.Close() }()

	if second.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.StatusCode)
	}
}
