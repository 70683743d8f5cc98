package storefront

import (
	"net/http"

	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/pkg/kit"
)

const msgCatalogFailed = "failed to load products"

// handleListProducts filters the held catalog snapshot for every request;
// the snapshot itself is never narrowed.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Catalog.Load(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}

	q := r.URL.Query().Get("q")
	kit.WriteJSON(w, http.StatusOK, newProductsView(q, catalog.Filter(products, q)))
}

func (s *Server) handleReloadProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Catalog.Reload(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	s.metrics.catalogFetch(nil)

	kit.WriteJSON(w, http.StatusOK, newProductsView("", products))
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	kit.OrNop(s.Log).Error("catalog fetch failed", zap.Error(err))
	s.metrics.catalogFetch(err)
	kit.WriteError(w, r, http.StatusServiceUnavailable, msgCatalogFailed, map[string]any{
		"retry": "/products/reload",
	})
}
