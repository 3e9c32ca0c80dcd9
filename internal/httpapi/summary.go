package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Summary(s.orders))
}

// checkoutHandler redirects to the messaging link carrying the transcript.
// Nothing is cleared.
func (s *Server) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	summary := sess.Summary(s.orders)
	s.logger.Info("checkout",
		zap.String("session", sess.ID),
		zap.Int("base_lines", len(summary.BaseLines)),
		zap.Int("gift_lines", len(summary.GiftLines)),
		zap.Int64("total", summary.Total))
	w.Header().Set("Location", summary.Link)
	w.WriteHeader(http.StatusFound)
}
