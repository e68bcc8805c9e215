package notify

import "testing"

func TestBus_DeliversToSubscribers(t *testing.T) {
	bus := NewBus(nil)

	var got []Event
	bus.Subscribe(CartUpdated{}.EventName(), func(e Event) {
		got = append(got, e)
	})

	bus.Publish(CartUpdated{UserID: 7, Items: 3})
	bus.Publish(Notice{Level: LevelInfo, Message: "unrelated"})

	if len(got) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(got))
	}
	event, ok := got[0].(CartUpdated)
	if !ok {
		t.Fatalf("expected CartUpdated, got %T", got[0])
	}
	if event.UserID != 7 || event.Items != 3 {
		t.Fatalf("unexpected event payload: %+v", event)
	}
}

func TestBus_MultipleSubscribersInOrder(t *testing.T) {
	bus := NewBus(nil)

	var order []string
	bus.Subscribe(SessionInvalid{}.EventName(), func(Event) { order = append(order, "first") })
	bus.Subscribe(SessionInvalid{}.EventName(), func(Event) { order = append(order, "second") })

	bus.Publish(SessionInvalid{Reason: "token expired"})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected in-order delivery, got %v", order)
	}
}

func TestBus_PanicDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(nil)

	delivered := false
	bus.Subscribe(BackendUnreachable{}.EventName(), func(Event) { panic("boom") })
	bus.Subscribe(BackendUnreachable{}.EventName(), func(Event) { delivered = true })

	bus.Publish(BackendUnreachable{Endpoint: "cart.list"})

	if !delivered {
		t.Fatal("panic in one handler must not block the next")
	}
}

func TestBus_CatchAllReceivesEverything(t *testing.T) {
	bus := NewBus(nil)

	var names []string
	bus.SubscribeAll(func(e Event) { names = append(names, e.EventName()) })

	bus.Publish(CartUpdated{UserID: 1})
	bus.Publish(Success("Order", "confirmed"))
	bus.Publish(SessionInvalid{})

	want := []string{"cart.updated", "notice", "session.invalid"}
	if len(names) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestNoticeConstructors(t *testing.T) {
	cases := []struct {
		notice Notice
		level  string
	}{
		{Success("t", "m"), LevelSuccess},
		{Info("t", "m"), LevelInfo},
		{Warning("t", "m"), LevelWarning},
		{Danger("t", "m"), LevelDanger},
	}
	for _, tc := range cases {
		if tc.notice.Level != tc.level {
			t.Errorf("expected level %q, got %q", tc.level, tc.notice.Level)
		}
	}
}
