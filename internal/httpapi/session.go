package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cadoz/internal/platform"
	"cadoz/internal/storefront"
)

const (
	cookiePrefix    = "shop_"
	cookieSessionID = cookiePrefix + "session-id"
	cookieMaxAge    = 60 * 60 * 48
)

type (
	ctxKeySessionID struct{}
	ctxKeySession   struct{}
)

func (s *Server) ensureSessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		c, err := r.Cookie(cookieSessionID)
		if err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = platform.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieSessionID,
				Value:    id,
				Path:     "/",
				MaxAge:   cookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			s.logger.Debug("session created", zap.String("session", id))
		}
		sess, release, err := s.sessions.Acquire(r.Context(), id)
		if err != nil {
			s.renderHTTPError(w, r, err)
			return
		}
		defer release()
		ctx := context.WithValue(r.Context(), ctxKeySessionID{}, id)
		ctx = context.WithValue(ctx, ctxKeySession{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	v, _ := r.Context().Value(ctxKeySessionID{}).(string)
	return v
}

// session is the session ensureSessionID holds for the request.
func (s *Server) session(r *http.Request) (*storefront.Session, error) {
	if sess, ok := r.Context().Value(ctxKeySession{}).(*storefront.Session); ok {
		return sess, nil
	}
	return s.sessions.Session(r.Context(), sessionID(r))
}
