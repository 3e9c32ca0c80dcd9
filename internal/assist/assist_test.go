package assist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func post(t *testing.T, h http.Handler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/assist", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func echo() Generator {
	return GeneratorFunc(func(_ context.Context, msg string) (string, error) {
		return "you said " + msg, nil
	})
}

func TestHandlerSuccess(t *testing.T) {
	h := NewHandler(echo(), time.Second, zap.NewNop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	rec := post(t, h, "application/json; charset=utf-8", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply Reply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
	assert.Equal(t, "you said hello", reply.Reply)
	assert.True(t, fixed.Equal(reply.Timestamp))
}

func TestHandlerStatusMapping(t *testing.T) {
	fail := func(err error) Generator {
		return GeneratorFunc(func(context.Context, string) (string, error) { return "", err })
	}
	slow := GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	tests := []struct {
		name        string
		gen         Generator
		contentType string
		body        string
		want        int
	}{
		{"missing configuration", nil, "application/json", `{"message":"hi"}`, http.StatusInternalServerError},
		{"wrong content type", echo(), "text/plain", `{"message":"hi"}`, http.StatusUnsupportedMediaType},
		{"no content type", echo(), "", `{"message":"hi"}`, http.StatusUnsupportedMediaType},
		{"empty message", echo(), "application/json", `{"message":"   "}`, http.StatusBadRequest},
		{"not json", echo(), "application/json", `hello`, http.StatusBadRequest},
		{"message not a string", echo(), "application/json", `{"message":42}`, http.StatusBadRequest},
		{"timeout", slow, "application/json", `{"message":"hi"}`, http.StatusRequestTimeout},
		{"upstream status", fail(&UpstreamError{Status: http.StatusTooManyRequests, Message: "quota"}), "application/json", `{"message":"hi"}`, http.StatusTooManyRequests},
		{"no answer", fail(ErrNoAnswer), "application/json", `{"message":"hi"}`, http.StatusNotFound},
		{"blank answer", GeneratorFunc(func(context.Context, string) (string, error) { return " ", nil }), "application/json", `{"message":"hi"}`, http.StatusNotFound},
		{"other failure", fail(errors.New("boom")), "application/json", `{"message":"hi"}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.gen, 50*time.Millisecond, zap.NewNop())
			rec := post(t, h, tt.contentType, tt.body)
			assert.Equal(t, tt.want, rec.Code)

			var body ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("cause")
	err := &UpstreamError{Status: 503, Message: "down", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "503")
}

func TestUpstreamErrorFromGemini(t *testing.T) {
	wrapped := upstreamError(context.DeadlineExceeded)
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
}

func TestClientTurnsEveryOutcomeIntoBotMessage(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
		want string
	}{
		{"reply", echo(), "you said hi"},
		{"no answer", GeneratorFunc(func(context.Context, string) (string, error) { return "", ErrNoAnswer }), BotNotUnderstood},
		{"timeout", GeneratorFunc(func(ctx context.Context, _ string) (string, error) { <-ctx.Done(); return "", ctx.Err() }), BotTimeout},
		{"upstream", GeneratorFunc(func(context.Context, string) (string, error) {
			return "", &UpstreamError{Status: 503, Message: "overloaded"}
		}), "Sorry, something went wrong: overloaded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(NewHandler(tt.gen, 50*time.Millisecond, zap.NewNop()))
			defer srv.Close()

			msg := NewClient(srv.URL, srv.Client()).Ask(context.Background(), "hi")
			assert.True(t, msg.FromBot)
			assert.Equal(t, tt.want, msg.Text)
			assert.False(t, msg.Timestamp.IsZero())
		})
	}
}

func TestClientUnreachableAndBlank(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil)
	assert.Equal(t, BotUnavailable, c.Ask(context.Background(), "hi").Text)
	assert.Equal(t, BotEmptyInput, c.Ask(context.Background(), " ").Text)
}
