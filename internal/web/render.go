package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// views — скомпилированный набор шаблонов витрины.
type views struct {
	templates *template.Template
}

func newViews() *views {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
		"inc":   func(i int) int { return i + 1 },
		"dec":   func(i int) int { return i - 1 },
	}
	return &views{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")),
	}
}

// page — данные, доступные каждому шаблону.
type page struct {
	Title     string
	Session   *domain.Session
	IsAdmin   bool
	Flashes   []domain.Flash
	Data      any
	RequestID string
}

// render отдаёт страницу. Одноразовые уведомления сессии забираются и
// показываются ровно один раз.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	sess := sessionFrom(r)
	p := page{
		Title:     title,
		Session:   sess,
		IsAdmin:   isAdmin(sess),
		Flashes:   s.takeFlashes(sess),
		Data:      data,
		RequestID: requestIDFrom(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.templates.ExecuteTemplate(w, name, p); err != nil {
		s.logger.WithError(err).WithField("template", name).Error("template execution failed")
	}
}
