package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
	"github.com/vladislavdragonenkov/sagafitmi/internal/token"
)

const sessionCookie = "sagafitmi_session"

// loadSession достаёт сессию по cookie, а при её отсутствии создаёт
// новую анонимную. Сессия кладётся в контекст запроса.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) *domain.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if sess, err := s.store.Get(cookie.Value); err == nil {
			return &sess
		}
	}

	sess := domain.Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	if err := s.store.Save(sess); err != nil {
		s.logger.WithError(err).Warn("failed to persist new session")
	}
	if s.metrics != nil {
		s.metrics.SessionOpened()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return &sess
}

// sessionFrom возвращает сессию запроса. Middleware loadSession гарантирует
// её наличие на всех маршрутах витрины.
func sessionFrom(r *http.Request) *domain.Session {
	sess, _ := r.Context().Value(sessionKey).(*domain.Session)
	return sess
}

// saveSession сохраняет изменённую сессию; ошибка хранилища не прерывает
// обработку запроса.
func (s *Server) saveSession(sess *domain.Session) {
	if sess == nil {
		return
	}
	if err := s.store.Save(*sess); err != nil {
		s.logger.WithError(err).WithField("session_id", sess.ID).
			Warn("failed to save session")
	}
}

// flash добавляет одноразовое уведомление и сохраняет сессию.
func (s *Server) flash(sess *domain.Session, n notify.Notice) {
	if sess == nil {
		return
	}
	sess.Flashes = append(sess.Flashes, domain.Flash{
		Level:   n.Level,
		Title:   n.Title,
		Message: n.Message,
	})
	s.saveSession(sess)
}

// takeFlashes забирает накопленные уведомления и очищает их в хранилище.
func (s *Server) takeFlashes(sess *domain.Session) []domain.Flash {
	if sess == nil || len(sess.Flashes) == 0 {
		return nil
	}
	flashes := sess.Flashes
	sess.Flashes = nil
	s.saveSession(sess)
	return flashes
}

// apiCtx — контекст для вызовов бэкенда с bearer-токеном сессии.
func apiCtx(r *http.Request) context.Context {
	sess := sessionFrom(r)
	if sess == nil {
		return r.Context()
	}
	return backend.WithToken(r.Context(), sess.Token)
}

// requireAuth отправляет неавторизованных на /login.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r).Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin пропускает только сессии с админской ролью в токене.
// Проверка справочная: решающее слово за бэкендом.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		claims, err := token.ParseClaims(sess.Token)
		if err != nil || !claims.IsAdmin() {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isAdmin сообщает, несёт ли токен сессии админскую роль.
func isAdmin(sess *domain.Session) bool {
	if !sess.Authenticated() {
		return false
	}
	claims, err := token.ParseClaims(sess.Token)
	return err == nil && claims.IsAdmin()
}

// failRequest переводит ошибку бэкенда в реакцию страницы: 401 инвалидирует
// сессию, транспортный сбой и ошибки API становятся flash-уведомлением,
// после чего пользователь возвращается на redirectTo.
func (s *Server) failRequest(w http.ResponseWriter, r *http.Request, err error, redirectTo string) {
	sess := sessionFrom(r)

	if backend.IsUnauthorized(err) {
		if s.bus != nil {
			s.bus.Publish(notify.SessionInvalid{SessionID: sess.ID, Reason: "backend rejected token"})
		} else if sess != nil {
			_ = s.store.Delete(sess.ID)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if backend.IsUnreachable(err) {
		if s.bus != nil {
			s.bus.Publish(notify.BackendUnreachable{})
		}
		s.flash(sess, notify.Danger("Backend", domain.ErrBackendUnavailable.Error()))
	} else {
		s.flash(sess, notify.Danger("Error", err.Error()))
	}
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}
