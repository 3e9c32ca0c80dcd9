package httpapi

import (
	"net/http"
	"strings"

	"cadoz/internal/catalog"
	"cadoz/internal/platform"
)

type catalogResponse struct {
	Items  []catalog.Item   `json:"items"`
	Groups [][]catalog.Item `json:"groups"`
}

type productsResponse struct {
	Items  []catalog.Item `json:"items"`
	Brands []string       `json:"brands"`
}

// catalogHandler lists one category, or every gift option when no category
// is given.
func (s *Server) catalogHandler(w http.ResponseWriter, r *http.Request) {
	current := s.catalog.Current()
	var items []catalog.Item
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		items = current.ByCategory(catalog.Category(category))
	} else {
		items = current.GiftOptions()
	}
	items = orEmpty(items)
	groups := catalog.Group(items, catalog.DisplayGroupSize)
	if groups == nil {
		groups = [][]catalog.Item{}
	}
	writeJSON(w, http.StatusOK, catalogResponse{Items: items, Groups: groups})
}

func (s *Server) productsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, sub := q.Get("category"), q.Get("sub")
	if err := platform.FirstError(
		platform.RequireNotBlank(category, "category is required"),
		platform.RequireNotBlank(sub, "sub-category is required"),
	); err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	items := orEmpty(s.catalog.Current().ProductsIn(category, sub))
	brands := catalog.Brands(items)
	if brands == nil {
		brands = []string{}
	}
	writeJSON(w, http.StatusOK, productsResponse{Items: items, Brands: brands})
}

func orEmpty(items []catalog.Item) []catalog.Item {
	if items == nil {
		return []catalog.Item{}
	}
	return items
}
