package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// sessionStoreInMemory — простое in-memory хранилище сессий для локальной
// разработки и single-replica деплоя.
type sessionStoreInMemory struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]entry
}

type entry struct {
	sess     domain.Session
	deadline time.Time
}

// NewStore возвращает in-memory хранилище с заданным TTL сессии.
func NewStore(ttl time.Duration) domain.SessionStore {
	return newStore(ttl, time.Now)
}

func newStore(ttl time.Duration, now func() time.Time) *sessionStoreInMemory {
	return &sessionStoreInMemory{
		ttl:   ttl,
		now:   now,
		items: make(map[string]entry),
	}
}

// Save сохраняет сессию и продлевает её TTL.
func (s *sessionStoreInMemory) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[sess.ID] = entry{
		sess:     sess,
		deadline: s.now().Add(s.ttl),
	}
	return nil
}

// Get возвращает сессию или ErrSessionNotFound. Истёкшие сессии
// удаляются лениво, при обращении.
func (s *sessionStoreInMemory) Get(id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if s.now().After(e.deadline) {
		delete(s.items, id)
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return e.sess, nil
}

// Delete удаляет сессию; отсутствие записи не считается ошибкой.
func (s *sessionStoreInMemory) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

var _ domain.SessionStore = (*sessionStoreInMemory)(nil)
