package httpapi

import (
	"net/http"

	"cadoz/internal/search"
)

type searchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

type recentResponse struct {
	Terms []string `json:"terms"`
}

type recordRequest struct {
	Term string `json:"term"`
}

// searchHandler is stateless; recording a term is a separate call made when
// the shopper picks a result.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := s.searchIndex().Search(q, SearchLimit)
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: results})
}

func (s *Server) recentHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeRecent(w, sess.Recent.List())
}

func (s *Server) recordSearchHandler(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := decodeBody(r, &req); err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeRecent(w, sess.Recent.Add(r.Context(), req.Term))
}

func writeRecent(w http.ResponseWriter, terms []string) {
	if terms == nil {
		terms = []string{}
	}
	writeJSON(w, http.StatusOK, recentResponse{Terms: terms})
}
