package web

import (
	"net/http"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
	"github.com/vladislavdragonenkov/sagafitmi/internal/token"
)

func (s *Server) showLogin(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.gohtml", "Sign in", nil)
}

// handleLogin обменивает учётные данные на токен и наполняет сессию.
// Идентификатор пользователя резолвится лениво при первом заказе.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	resp, err := s.api.Login(r.Context(), email, password)
	if err != nil {
		s.failRequest(w, r, err, "/login")
		return
	}

	sess := sessionFrom(r)
	sess.Token = resp.Token
	sess.Email = email
	sess.UserID = 0
	sess.CartCount = 0

	// Subject токена может уточнить отображаемый email.
	if claims, err := token.ParseClaims(resp.Token); err == nil {
		if subject := claims.Subject(); subject != "" {
			sess.Email = subject
		}
	}

	s.saveSession(sess)
	s.flash(sess, notify.Success("Welcome", "signed in as "+sess.Email))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout очищает сессию; анонимная сессия создастся на следующем запросе.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.store.Delete(sess.ID); err != nil {
		s.logger.WithError(err).Warn("failed to delete session on logout")
	}
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) showRegister(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.gohtml", "Register", nil)
}

// handleRegister создаёт пользователя и сразу выполняет вход.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	req := backend.CreateUserRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	user, err := s.api.CreateUser(r.Context(), req)
	if err != nil {
		s.failRequest(w, r, err, "/register")
		return
	}

	resp, err := s.api.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.flash(sessionFrom(r), notify.Info("Account created", "please sign in"))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess := sessionFrom(r)
	sess.Token = resp.Token
	sess.Email = user.Email
	sess.UserID = user.ID
	s.saveSession(sess)

	s.flash(sess, notify.Success("Welcome", "account created"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
