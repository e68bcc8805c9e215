package notify

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает событие. Вызывается синхронно в горутине публикации.
type Handler func(event Event)

// Bus — внутрипроцессная шина типизированных событий витрины.
// Публикация синхронная и детерминированная: подписчики вызываются в
// порядке регистрации, паника подписчика изолируется и не роняет публикацию.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	// catchAll получают каждое событие (зеркалирование, аудит).
	catchAll []Handler
	logger   *log.Entry
}

// NewBus создаёт пустую шину событий.
func NewBus(logger *log.Entry) *Bus {
	if logger == nil {
		logger = log.WithField("component", "notify-bus")
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe регистрирует обработчик событий с указанным именем.
func (b *Bus) Subscribe(eventName string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
}

// SubscribeAll регистрирует обработчик всех событий шины.
func (b *Bus) SubscribeAll(h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.catchAll = append(b.catchAll, h)
}

// Publish доставляет событие всем подписчикам его имени и catch-all
// подписчикам. Событие без подписчиков — не ошибка.
func (b *Bus) Publish(event Event) {
	if event == nil {
		return
	}

	b.mu.RLock()
	subscribers := append([]Handler(nil), b.handlers[event.EventName()]...)
	subscribers = append(subscribers, b.catchAll...)
	b.mu.RUnlock()

	for _, h := range subscribers {
		b.dispatch(h, event)
	}
}

func (b *Bus) dispatch(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithFields(log.Fields{
				"event": event.EventName(),
				"panic": r,
			}).Error("event handler panicked")
		}
	}()
	h(event)
}
