package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sagafitmi/internal/backend"
	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

type adminProductsView struct {
	Products domain.ProductPage
	Query    string
	Page     int
}

func (s *Server) showAdminProducts(w http.ResponseWriter, r *http.Request) {
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
		s.failRequest(w, r, err, "/")
		return
	}

	s.render(w, r, "admin_products.gohtml", "Products", adminProductsView{
		Products: products,
		Query:    query,
		Page:     pageNum,
	})
}

func productRequestFromForm(r *http.Request) (backend.ProductRequest, error) {
	price, err := decimal.NewFromString(r.PostFormValue("price"))
	if err != nil {
		return backend.ProductRequest{}, err
	}
	return backend.ProductRequest{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       price,
	}, nil
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req, err := productRequestFromForm(r)
	if err != nil {
		s.flash(sessionFrom(r), notify.Danger("Products", "invalid price"))
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	product, err := s.api.CreateProduct(apiCtx(r), req)
	if err != nil {
		s.failRequest(w, r, err, "/admin/products")
		return
	}

	s.flash(sessionFrom(r), notify.Success("Products", "created "+product.Name))
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "bad product id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req, err := productRequestFromForm(r)
	if err != nil {
		s.flash(sessionFrom(r), notify.Danger("Products", "invalid price"))
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if _, err := s.api.UpdateProduct(apiCtx(r), productID, req); err != nil {
		s.failRequest(w, r, err, "/admin/products")
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "bad product id", http.StatusBadRequest)
		return
	}

	if err := s.api.DeleteProduct(apiCtx(r), productID); err != nil {
		s.failRequest(w, r, err, "/admin/products")
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// handleUploadImage принимает multipart-файл и передаёт его бэкенду.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "bad product id", http.StatusBadRequest)
		return
	}

	// Лимит размера файла 10 МБ, как на бэкенде.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.flash(sessionFrom(r), notify.Danger("Images", "no file selected"))
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}
	defer func() { _ = file.Close() }()

	mainImage := r.PostFormValue("mainImage") == "on" || r.PostFormValue("mainImage") == "true"

	if _, err := s.api.UploadProductImage(apiCtx(r), productID, header.Filename, file, mainImage); err != nil {
		s.failRequest(w, r, err, "/admin/products")
		return
	}

	s.flash(sessionFrom(r), notify.Success("Images", "image uploaded"))
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleAssignMainImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil {
		http.Error(w, "bad image id", http.StatusBadRequest)
		return
	}

	if _, err := s.api.AssignMainImage(apiCtx(r), imageID); err != nil {
		s.failRequest(w, r, err, "/admin/products")
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil {
		http.Error(w, "bad image id", http.StatusBadRequest)
		return
	}

	if err := s.api.DeleteProductImage(apiCtx(r), imageID); err != nil {
		s.failRequest(w, r, err, "/admin/products")
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}
