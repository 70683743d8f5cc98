package storefront

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/pkg/kit"
)

type addItemReq struct {
	ProductID string `json:"product_id"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	c, err := s.Carts.Get(r.Context(), sess.ID)
	if err != nil {
		s.writeCartError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, newCartView(c))
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	var req addItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	pid := strings.TrimSpace(req.ProductID)
	if pid == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
		return
	}

	if _, err := s.Catalog.Load(r.Context()); err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	p, ok := s.Catalog.Lookup(pid)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": pid})
		return
	}

	c, err := s.Carts.Update(r.Context(), sess.ID, func(c *cart.Cart) { c.Add(p) })
	if err != nil {
		s.writeCartError(w, r, err)
		return
	}
	s.metrics.cartMutation("add")

	kit.WriteJSON(w, http.StatusOK, newCartView(c))
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	pid := chi.URLParam(r, "id")

	c, err := s.Carts.Update(r.Context(), sess.ID, func(c *cart.Cart) { c.Remove(pid) })
	if err != nil {
		s.writeCartError(w, r, err)
		return
	}
	s.metrics.cartMutation("remove")

	kit.WriteJSON(w, http.StatusOK, newCartView(c))
}

func (s *Server) writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, cart.ErrConflict) {
		kit.WriteError(w, r, http.StatusConflict, "cart changed, try again", nil)
		return
	}
	kit.OrNop(s.Log).Error("cart store failed", zap.Error(err))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
