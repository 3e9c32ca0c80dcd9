package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"cadoz/internal/cart"
	"cadoz/internal/catalog"
	"cadoz/internal/gift"
	"cadoz/internal/platform"
	"cadoz/internal/wishlist"
)

type cartResponse struct {
	Lines        []cart.Line        `json:"lines"`
	Total        int64              `json:"total"`
	Count        int                `json:"count"`
	Notification *gift.Notification `json:"notification,omitempty"`
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type deltaRequest struct {
	Delta int `json:"delta"`
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

type wishlistResponse struct {
	Items []wishlist.Item `json:"items"`
	Added *bool           `json:"added,omitempty"`
}

func (s *Server) viewCartHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeCart(w, sess.Cart.Lines(), nil)
}

func (s *Server) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeBody(r, &req); err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := platform.FirstError(platform.RequireNotBlank(req.ProductID, cart.ErrMsgProductIDRequired)); err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	product, ok := s.catalog.Find(req.ProductID)
	if !ok {
		s.renderHTTPError(w, r, platform.NewNotFoundf("product not found: %s", req.ProductID))
		return
	}
	lines, err := sess.Cart.Add(r.Context(), product, req.Quantity)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeCart(w, lines, &gift.Notification{Level: gift.LevelSuccess, Message: product.Name + " added to your cart"})
}

func (s *Server) emptyCartHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	sess.Cart.Clear(r.Context())
	writeCart(w, sess.Cart.Lines(), nil)
}

// updateCartHandler changes a line by a quantity delta, as the summary's
// plus and minus controls do.
func (s *Server) updateCartHandler(w http.ResponseWriter, r *http.Request) {
	var req deltaRequest
	if err := decodeBody(r, &req); err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	lines, err := sess.Cart.UpdateQuantity(r.Context(), mux.Vars(r)["id"], req.Delta)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeCart(w, lines, &gift.Notification{Level: gift.LevelSuccess, Message: "Quantity updated"})
}

func (s *Server) removeFromCartHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	lines := sess.Cart.Remove(r.Context(), mux.Vars(r)["id"])
	writeCart(w, lines, &gift.Notification{Level: gift.LevelError, Message: "Item removed from cart"})
}

func writeCart(w http.ResponseWriter, lines []cart.Line, note *gift.Notification) {
	if lines == nil {
		lines = []cart.Line{}
	}
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	writeJSON(w, http.StatusOK, cartResponse{Lines: lines, Total: cart.Total(lines), Count: count, Notification: note})
}

func (s *Server) viewWishlistHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeWishlist(w, sess.Wishlist.Items(), nil)
}

func (s *Server) addToWishlistHandler(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := decodeBody(r, &req); err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	product, err := s.product(req.ProductID)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	items, err := sess.Wishlist.Add(r.Context(), wishlist.FromCatalog(product))
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeWishlist(w, items, nil)
}

func (s *Server) removeFromWishlistHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeWishlist(w, sess.Wishlist.Remove(r.Context(), mux.Vars(r)["id"]), nil)
}

func (s *Server) toggleWishlistHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	product, err := s.product(mux.Vars(r)["id"])
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	items, added, err := sess.Wishlist.Toggle(r.Context(), wishlist.FromCatalog(product))
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeWishlist(w, items, &added)
}

// product resolves an ordinary product, rejecting gift options.
func (s *Server) product(id string) (catalog.Item, error) {
	if err := platform.FirstError(platform.RequireNotBlank(id, wishlist.ErrMsgProductIDRequired)); err != nil {
		return catalog.Item{}, err
	}
	it, ok := s.catalog.Find(id)
	if !ok || !it.IsProduct() {
		return catalog.Item{}, platform.NewNotFoundf("product not found: %s", id)
	}
	return it, nil
}

func writeWishlist(w http.ResponseWriter, items []wishlist.Item, added *bool) {
	if items == nil {
		items = []wishlist.Item{}
	}
	writeJSON(w, http.StatusOK, wishlistResponse{Items: items, Added: added})
}
