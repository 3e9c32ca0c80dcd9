// Package assist is the storefront's conversational helper: an HTTP
// endpoint in front of a language model, and a client that turns every
// outcome into a chat message.
package assist

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds one upstream call.
const DefaultTimeout = 10 * time.Second

// ErrNoAnswer is returned by a Generator that got no usable answer.
var ErrNoAnswer = errors.New("no answer available")

// Generator produces a reply to a shopper's message.
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, message string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

// UpstreamError is a failure reported by the model provider, carrying the
// provider's HTTP status.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Request is the endpoint's input.
type Request struct {
	Message string `json:"message"`
}

// Reply is the endpoint's successful output.
type Reply struct {
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorBody is the endpoint's failure output.
type ErrorBody struct {
	Error string `json:"error"`
}
