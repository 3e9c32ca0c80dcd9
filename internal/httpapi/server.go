// Package httpapi exposes the storefront over JSON HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cadoz/internal/catalog"
	"cadoz/internal/gift"
	"cadoz/internal/order"
	"cadoz/internal/platform"
	"cadoz/internal/search"
	"cadoz/internal/storefront"
)

// SearchLimit caps the number of search results returned.
const SearchLimit = 20

// Deps are the collaborators the server routes to.
type Deps struct {
	Catalog  *catalog.Holder
	Sessions *storefront.Manager
	Orders   order.Aggregator
	Assist   http.Handler
	Logger   *zap.Logger
}

// Server holds the storefront handlers.
type Server struct {
	catalog  *catalog.Holder
	sessions *storefront.Manager
	orders   order.Aggregator
	assist   http.Handler
	decoder  *gift.Decoder
	logger   *zap.Logger

	mu      sync.Mutex
	indexed *catalog.Catalog
	index   *search.Index
}

// NewServer creates a server. A nil assist handler leaves the assist route
// unregistered.
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	orders := deps.Orders
	if orders == nil {
		orders = order.NewAggregator(order.DefaultConfig())
	}
	return &Server{
		catalog:  deps.Catalog,
		sessions: deps.Sessions,
		orders:   orders,
		assist:   deps.Assist,
		decoder:  gift.NewDecoder(deps.Catalog),
		logger:   logger,
	}
}

// Actions is the router the gift action endpoint decodes through.
func (s *Server) Actions() *platform.Router[gift.Action] { return s.decoder.Router() }

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.accessLog)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/catalog", s.catalogHandler).Methods(http.MethodGet)
	api.HandleFunc("/catalog/products", s.productsHandler).Methods(http.MethodGet)
	if s.assist != nil {
		api.Handle("/assist", s.assist).Methods(http.MethodPost)
	}

	shop := api.NewRoute().Subrouter()
	shop.Use(s.ensureSessionID)

	shop.HandleFunc("/gift", s.giftHandler).Methods(http.MethodGet)
	shop.HandleFunc("/gift/actions", s.giftActionHandler).Methods(http.MethodPost)
	shop.HandleFunc("/gift/next", s.giftNextHandler).Methods(http.MethodPost)
	shop.HandleFunc("/gift/prev", s.giftPrevHandler).Methods(http.MethodPost)
	shop.HandleFunc("/gift/steps/{step}", s.stepViewHandler).Methods(http.MethodGet)
	shop.HandleFunc("/gift/steps/{step}/choose", s.chooseHandler).Methods(http.MethodPost)
	shop.HandleFunc("/gift/entries/{id}", s.giftEntryQuantityHandler).Methods(http.MethodPatch)
	shop.HandleFunc("/gift/entries/{id}", s.giftEntryRemoveHandler).Methods(http.MethodDelete)

	shop.HandleFunc("/cart", s.viewCartHandler).Methods(http.MethodGet)
	shop.HandleFunc("/cart", s.addToCartHandler).Methods(http.MethodPost)
	shop.HandleFunc("/cart", s.emptyCartHandler).Methods(http.MethodDelete)
	shop.HandleFunc("/cart/{id}", s.updateCartHandler).Methods(http.MethodPatch)
	shop.HandleFunc("/cart/{id}", s.removeFromCartHandler).Methods(http.MethodDelete)

	shop.HandleFunc("/wishlist", s.viewWishlistHandler).Methods(http.MethodGet)
	shop.HandleFunc("/wishlist", s.addToWishlistHandler).Methods(http.MethodPost)
	shop.HandleFunc("/wishlist/{id}", s.removeFromWishlistHandler).Methods(http.MethodDelete)
	shop.HandleFunc("/wishlist/{id}/toggle", s.toggleWishlistHandler).Methods(http.MethodPost)

	shop.HandleFunc("/search", s.searchHandler).Methods(http.MethodGet)
	shop.HandleFunc("/search/recent", s.recentHandler).Methods(http.MethodGet)
	shop.HandleFunc("/search/recent", s.recordSearchHandler).Methods(http.MethodPost)

	shop.HandleFunc("/summary", s.summaryHandler).Methods(http.MethodGet)

	checkout := r.NewRoute().Subrouter()
	checkout.Use(s.ensureSessionID)
	checkout.HandleFunc("/checkout", s.checkoutHandler).Methods(http.MethodGet)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// searchIndex rebuilds the index whenever the catalogue was swapped.
func (s *Server) searchIndex() *search.Index {
	current := s.catalog.Current()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil || s.indexed != current {
		s.index = search.NewIndex(current.Products())
		s.indexed = current
		s.logger.Debug("search index rebuilt", zap.Int("products", s.index.Len()))
	}
	return s.index
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) renderHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	status := platform.HTTPStatus(err)
	msg := err.Error()
	if cmdErr, ok := platform.AsCommandError(err); ok {
		msg = cmdErr.Message
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", zap.String("path", r.URL.Path), zap.Error(err))
		msg = http.StatusText(status)
	} else {
		s.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return platform.NewInvalidArgumentf("malformed request body: %v", err)
	}
	return nil
}
