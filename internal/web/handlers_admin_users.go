package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

type adminUsersView struct {
	Users []domain.User
}

func (s *Server) showAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.api.Users(apiCtx(r))
	if err != nil {
		s.failRequest(w, r, err, "/")
		return
	}
	s.render(w, r, "admin_users.gohtml", "Users", adminUsersView{Users: users})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	user, err := s.api.CreateUser(apiCtx(r), backend.CreateUserRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	})
	if err != nil {
		s.failRequest(w, r, err, "/admin/users")
		return
	}

	s.flash(sessionFrom(r), notify.Success("Users", "created "+user.Email))
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "bad user id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	_, err = s.api.UpdateUser(apiCtx(r), userID, backend.UpdateUserRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	})
	if err != nil {
		s.failRequest(w, r, err, "/admin/users")
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "bad user id", http.StatusBadRequest)
		return
	}

	if err := s.api.DeleteUser(apiCtx(r), userID); err != nil {
		s.failRequest(w, r, err, "/admin/users")
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
