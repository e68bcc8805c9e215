package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewDependencies_MemoryDriver(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := NewDependencies(cfg, log.WithField("component", "app-test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer deps.Close()

	if deps.Store == nil {
		t.Error("session store must be initialized")
	}
	if deps.API == nil {
		t.Error("backend client must be initialized")
	}
	if deps.Flow == nil {
		t.Error("checkout flow must be initialized")
	}
	if deps.Bus == nil {
		t.Error("event bus must be initialized")
	}
}

func TestNewDependencies_UnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SessionDriver = "etcd"

	if _, err := NewDependencies(cfg, nil); err == nil {
		t.Fatal("expected error for unknown session driver")
	}
}

func TestDependencies_CloseWithoutExternals(t *testing.T) {
	cfg := DefaultConfig()
	deps, err := NewDependencies(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Без Kafka и Redis закрытие не должно паниковать.
	deps.Close()
}
