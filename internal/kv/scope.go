package kv

import "context"

// Scoped prefixes every key so that independent sessions sharing one backend
// never see each other's values. Closing a scoped backend does not close the
// underlying one.
func Scoped(b Backend, prefix string) Backend {
	return &scoped{inner: b, prefix: prefix + "/"}
}

type scoped struct {
	inner  Backend
	prefix string
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Put(ctx context.Context, key string, value []byte) error {
	return s.inner.Put(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return nil }
