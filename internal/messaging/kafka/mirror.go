package kafka

import (
	"encoding/json"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

// eventPublisher — то, что умеет Producer. Вынесено в интерфейс для тестов.
type eventPublisher interface {
	PublishEvent(topic string, key string, event interface{}) error
}

// Mirror зеркалирует события внутренней шины в Kafka для аналитики.
// Публикация best-effort: сбой Kafka логируется и не влияет на сценарий.
type Mirror struct {
	publisher eventPublisher
	logger    *log.Entry
}

// NewMirror создаёт зеркало поверх producer'а. Подключение к шине:
//
//	bus.SubscribeAll(mirror.Handle)
func NewMirror(producer *Producer, logger *log.Entry) *Mirror {
	return newMirror(producer, logger)
}

func newMirror(publisher eventPublisher, logger *log.Entry) *Mirror {
	if logger == nil {
		logger = log.WithField("component", "kafka-mirror")
	}
	return &Mirror{publisher: publisher, logger: logger}
}

// Handle — обработчик для notify.Bus: упаковывает событие в конверт и
// публикует в топик событий витрины.
func (m *Mirror) Handle(event notify.Event) {
	envelope := NewStorefrontEvent(event.EventName(), payloadOf(event))

	key := envelope.EventID
	if cart, ok := event.(notify.CartUpdated); ok {
		// Ключуем по пользователю, чтобы его события шли в одну партицию.
		key = strconv.FormatInt(cart.UserID, 10)
	}

	if err := m.publisher.PublishEvent(TopicStorefrontEvents, key, envelope); err != nil {
		m.logger.WithError(err).WithField("event", event.EventName()).
			Warn("failed to mirror event to kafka")
	}
}

// payloadOf переводит событие в map через его JSON-представление.
func payloadOf(event notify.Event) map[string]any {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	return payload
}
