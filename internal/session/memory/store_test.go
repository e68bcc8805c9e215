package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

func newSession() domain.Session {
	return domain.Session{
		ID:        "sess-1",
		Token:     "tok",
		Email:     "ana@example.com",
		UserID:    7,
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_SaveGet(t *testing.T) {
	store := NewStore(time.Hour)
	sess := newSession()

	require.NoError(t, store.Save(sess))

	stored, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, stored.Token)
	assert.Equal(t, sess.UserID, stored.UserID)
	assert.Equal(t, sess.Email, stored.Email)
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(time.Hour)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Now()
	store := newStore(time.Minute, func() time.Time { return now })

	require.NoError(t, store.Save(newSession()))

	// Сдвигаем часы за пределы TTL.
	now = now.Add(2 * time.Minute)

	_, err := store.Get("sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_SaveProlongsTTL(t *testing.T) {
	now := time.Now()
	store := newStore(time.Minute, func() time.Time { return now })

	require.NoError(t, store.Save(newSession()))

	// Повторное сохранение до истечения продлевает срок жизни.
	now = now.Add(30 * time.Second)
	require.NoError(t, store.Save(newSession()))

	now = now.Add(45 * time.Second)
	_, err := store.Get("sess-1")
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(time.Hour)
	sess := newSession()
	require.NoError(t, store.Save(sess))

	require.NoError(t, store.Delete(sess.ID))
	// Повторное удаление не считается ошибкой.
	require.NoError(t, store.Delete(sess.ID))

	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
