package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

// keyPrefix отделяет сессии витрины от прочих ключей в общем Redis.
const keyPrefix = "sagafitmi:session:"

// opTimeout — верхняя граница одной операции с Redis.
const opTimeout = 3 * time.Second

// sessionStoreRedis хранит сессии в Redis с TTL средствами самого Redis.
// Используется при деплое в несколько реплик, когда in-memory хранилища
// недостаточно.
type sessionStoreRedis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore возвращает Redis-хранилище сессий.
func NewStore(client *redis.Client, ttl time.Duration) domain.SessionStore {
	return &sessionStoreRedis{client: client, ttl: ttl}
}

// Save сериализует сессию в JSON и продлевает TTL ключа.
func (s *sessionStoreRedis) Save(sess domain.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get возвращает сессию или ErrSessionNotFound, если ключ истёк.
func (s *sessionStoreRedis) Get(id string) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, nil
}

// Delete удаляет сессию; отсутствие ключа не считается ошибкой.
func (s *sessionStoreRedis) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis; используется health-чекером.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

var _ domain.SessionStore = (*sessionStoreRedis)(nil)
