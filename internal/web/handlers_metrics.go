package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

type salesMetricsView struct {
	Request  backend.SalesMetricsRequest
	Report   backend.SalesMetricsResponse
	Ran      bool
	Statuses []domain.OrderStatus
}

// showSalesMetrics — отчёт по продажам. GET показывает форму, POST с
// заполненным диапазоном дат запускает отчёт.
func (s *Server) showSalesMetrics(w http.ResponseWriter, r *http.Request) {
	view := salesMetricsView{Statuses: domain.KnownStatuses()}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		view.Request = backend.SalesMetricsRequest{
			StartDate:           r.PostFormValue("startDate"),
			EndDate:             r.PostFormValue("endDate"),
			Statuses:            r.PostForm["statuses"],
			ProductIDs:          parseIDList(r.PostFormValue("productIds")),
			ProductDescriptions: splitCSV(r.PostFormValue("productDescriptions")),
			UserIDs:             parseIDList(r.PostFormValue("userIds")),
		}

		report, err := s.api.SalesMetrics(apiCtx(r), view.Request)
		if err != nil {
			s.failRequest(w, r, err, "/admin/metrics/sales")
			return
		}
		view.Report = report
		view.Ran = true
	}

	s.render(w, r, "metrics_sales.gohtml", "Sales metrics", view)
}

type productMetricsView struct {
	Request backend.ProductMetricsRequest
	Items   []backend.ProductMetricsItem
	Ran     bool
}

// showProductMetrics — отчёт по товарам: продано штук и на какую сумму,
// с сортировкой и ограничением выборки.
func (s *Server) showProductMetrics(w http.ResponseWriter, r *http.Request) {
	view := productMetricsView{Request: backend.ProductMetricsRequest{SortBy: "quantity"}}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		top, _ := strconv.Atoi(r.PostFormValue("top"))
		view.Request = backend.ProductMetricsRequest{
			StartDate: r.PostFormValue("startDate"),
			EndDate:   r.PostFormValue("endDate"),
			SortBy:    r.PostFormValue("sortBy"),
			Top:       top,
		}

		items, err := s.api.ProductMetrics(apiCtx(r), view.Request)
		if err != nil {
			s.failRequest(w, r, err, "/admin/metrics/products")
			return
		}
		view.Items = items
		view.Ran = true
	}

	s.render(w, r, "metrics_products.gohtml", "Product metrics", view)
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIDList(value string) []int64 {
	var ids []int64
	for _, part := range splitCSV(value) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
