package platform

import "go.uber.org/zap"

// Error message constants.
const (
	ErrMsgUnknownType = "unknown type"
)

// Decoder turns a raw payload into a value of type T.
//
// Each decoder validates its own payload and returns a CommandError when
// the payload is unusable.
type Decoder[T any] func(data []byte) (T, error)

type routeEntry[T any] struct {
	name   string
	decode Decoder[T]
}

// Router dispatches raw payloads to decoders by type name.
//
// Replaces switch/case decoding of tagged wire messages.
//
// Example:
//
//	router := platform.NewRouter[gift.Action]("gift").
//	    On("ADD_TO_CART", decodeAddToCart).
//	    On("CHANGE_STEP", decodeChangeStep)
//
//	action, err := router.Dispatch(msg.Type, msg.Payload)
type Router[T any] struct {
	name    string
	entries []routeEntry[T]
}

// NewRouter creates a router for a named domain.
func NewRouter[T any](name string) *Router[T] {
	return &Router[T]{name: name}
}

// On registers a decoder for a type name.
func (r *Router[T]) On(typeName string, decode Decoder[T]) *Router[T] {
	r.entries = append(r.entries, routeEntry[T]{typeName, decode})
	return r
}

// Dispatch finds the decoder registered for typeName and runs it.
func (r *Router[T]) Dispatch(typeName string, data []byte) (T, error) {
	for _, e := range r.entries {
		if e.name == typeName {
			return e.decode(data)
		}
	}
	var zero T
	return zero, NewInvalidArgumentf("%s: %q", ErrMsgUnknownType, typeName)
}

// Types returns registered type names in registration order.
func (r *Router[T]) Types() []string {
	result := make([]string, len(r.entries))
	for i, e := range r.entries {
		result[i] = e.name
	}
	return result
}

// LogTypes writes the registered type names to logger once at startup.
func (r *Router[T]) LogTypes(logger *zap.Logger) {
	logger.Info("router registered", zap.String("domain", r.name), zap.Strings("types", r.Types()))
}
