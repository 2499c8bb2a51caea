package delivery

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Vovarama1992/medivoice/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog catalog.Catalog
}

func NewCatalogHandler(c catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// GET /medicines?q=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusOK, h.catalog.List())
		return
	}

	m, err := h.catalog.Search(q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, []catalog.Medicine{m})
}

// GET /medicines/{name}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.catalog.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GET /interactions?a=aspirin&b=ibuprofen
func (h *CatalogHandler) Interaction(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "both a and b are required"})
		return
	}

	note, err := h.catalog.Interaction(a, b)
	if err != nil && !errors.Is(err, catalog.ErrNoInteraction) {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"a":     a,
		"b":     b,
		"known": err == nil,
		"note":  note,
	})
}
