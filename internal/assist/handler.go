package assist

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Error messages returned to callers.
const (
	ErrMsgNotConfigured = "server configuration error: assistant API key is missing"
	ErrMsgContentType   = "unsupported content type"
	ErrMsgInvalid       = "a non-empty text message is required"
	ErrMsgTimeout       = "the request timed out"
	ErrMsgUpstream      = "the assistant service returned an error"
	ErrMsgNoAnswer      = "no answer was found"
	ErrMsgInternal      = "internal error while processing the request"
)

// Handler serves POST requests of {"message"} with {"reply", "timestamp"}.
type Handler struct {
	gen     Generator
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewHandler creates the endpoint. A nil generator means the server has no
// model credentials and every request fails with 500.
func NewHandler(gen Generator, timeout time.Duration, logger *zap.Logger) *Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Handler{gen: gen, timeout: timeout, logger: logger, now: time.Now}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.gen == nil {
		h.logger.Error("assist request without a configured generator")
		writeError(w, http.StatusInternalServerError, ErrMsgNotConfigured)
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, ErrMsgContentType)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, ErrMsgInvalid)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	reply, err := h.gen.Generate(ctx, req.Message)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = ErrNoAnswer
	}
	if err != nil {
		status, msg := h.classify(ctx, err)
		h.logger.Warn("assist request failed", zap.Int("status", status), zap.Error(err))
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, Reply{Reply: reply, Timestamp: h.now().UTC()})
}

func (h *Handler) classify(ctx context.Context, err error) (int, string) {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return http.StatusRequestTimeout, ErrMsgTimeout
	case errors.Is(err, ErrNoAnswer):
		return http.StatusNotFound, ErrMsgNoAnswer
	case errors.As(err, &upstream) && upstream.Status >= 400 && upstream.Status <= 599:
		msg := upstream.Message
		if msg == "" {
			msg = ErrMsgUpstream
		}
		return upstream.Status, msg
	default:
		return http.StatusInternalServerError, ErrMsgInternal
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
