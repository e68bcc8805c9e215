package web

import (
	"net/http"
	"strconv"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

const catalogPageSize = 12

type catalogView struct {
	Products domain.ProductPage
	Query    string
	Page     int
}

// handleHome — каталог с поиском и пагинацией. Недоступность бэкенда не
// роняет страницу: показываем пустой каталог и предупреждение.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if pageNum < 0 {
		pageNum = 0
	}

	products, err := s.api.SearchProducts(apiCtx(r), backend.ProductSearchQuery{
		Page:     pageNum,
		PageSize: catalogPageSize,
		Name:     query,
	})
	if err != nil {
		if backend.IsUnauthorized(err) {
			s.failRequest(w, r, err, "/")
			return
		}
		s.logger.WithError(err).Warn("catalog search failed")
		message := err.Error()
		if backend.IsUnreachable(err) {
			message = domain.ErrBackendUnavailable.Error()
		}
		s.flash(sessionFrom(r), notify.Warning("Catalog", message))
	}

	s.render(w, r, "home.gohtml", "Catalog", catalogView{
		Products: products,
		Query:    query,
		Page:     pageNum,
	})
}
