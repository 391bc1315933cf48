package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/atinyakov/SmileCare/internal/catalog"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the static catalog. It holds no state.
type CatalogHandler struct{}

func (CatalogHandler) Doctors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Doctors())
}

func (CatalogHandler) AppointmentTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.AppointmentTypes())
}

// Products lists products filtered by q, category and brand (both repeatable
// or comma-separated) and ordered by sort.
func (CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	writeJSON(w, http.StatusOK, catalog.Search(catalog.ProductQuery{
		Search:     v.Get("q"),
		Categories: splitList(v["category"]),
		Brands:     splitList(v["brand"]),
		Sort:       v.Get("sort"),
	}))
}

func (CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	p, ok := catalog.ProductByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
