package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewStorefrontMetrics_Isolated(t *testing.T) {
	metrics := newStorefrontMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newStorefrontMetricsWithRegisterer should not return nil")
	}
	if metrics.ordersConfirmed == nil {
		t.Error("ordersConfirmed counter should not be nil")
	}
	if metrics.orderFailures == nil {
		t.Error("orderFailures counter should not be nil")
	}
	if metrics.mismatchChecks == nil {
		t.Error("mismatchChecks counter should not be nil")
	}
	if metrics.mismatchDetected == nil {
		t.Error("mismatchDetected counter should not be nil")
	}
	if metrics.backendRequests == nil {
		t.Error("backendRequests counter vec should not be nil")
	}
	if metrics.backendDuration == nil {
		t.Error("backendDuration histogram vec should not be nil")
	}
	if metrics.activeSessions == nil {
		t.Error("activeSessions gauge should not be nil")
	}
}

func TestNewStorefrontMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	// Повторная регистрация в том же registry должна вернуть те же коллекторы.
	first := newStorefrontMetricsWithRegisterer(reg)
	second := newStorefrontMetricsWithRegisterer(reg)

	first.RecordOrderConfirmed()
	second.RecordOrderConfirmed()

	metric := &dto.Metric{}
	if err := second.ordersConfirmed.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected shared counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordMismatchCheck(t *testing.T) {
	metrics := newStorefrontMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordMismatchCheck(false)
	metrics.RecordMismatchCheck(true)

	checks := &dto.Metric{}
	if err := metrics.mismatchChecks.Write(checks); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if checks.Counter.GetValue() != 2.0 {
		t.Errorf("expected 2 checks, got %f", checks.Counter.GetValue())
	}

	detected := &dto.Metric{}
	if err := metrics.mismatchDetected.Write(detected); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if detected.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 detection, got %f", detected.Counter.GetValue())
	}
}

func TestRecordBackendRequest(t *testing.T) {
	metrics := newStorefrontMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordBackendRequest("cart.price_mismatch", "ok", 15*time.Millisecond)
	metrics.RecordBackendRequest("cart.price_mismatch", "error", 5*time.Millisecond)

	counter, err := metrics.backendRequests.GetMetricWithLabelValues("cart.price_mismatch", "ok")
	if err != nil {
		t.Fatalf("failed to get labeled counter: %v", err)
	}
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1.0 {
		t.Errorf("expected counter value 1.0, got %f", metric.Counter.GetValue())
	}
}

func TestSessionGauge(t *testing.T) {
	metrics := newStorefrontMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.SessionOpened()
	metrics.SessionOpened()
	metrics.SessionClosed()

	gauge := &dto.Metric{}
	if err := metrics.activeSessions.Write(gauge); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gauge.Gauge.GetValue() != 1.0 {
		t.Errorf("expected 1 active session, got %f", gauge.Gauge.GetValue())
	}
}
