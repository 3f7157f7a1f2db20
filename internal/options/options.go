// Package options provides the generic functional-option plumbing used
// by package mesh to configure deployment tunables (TTL default/max,
// dedup ring size) — never for the wire
// format itself, which is pinned exactly and never configurable.
package options

// Option mutates a T in place, returning an error if the value it would
// set is invalid.
type Option[T any] interface {
	apply(*T) error
}

// Func adapts a plain function into an Option.
type Func[T any] func(*T) error

func (f Func[T]) apply(t *T) error {
	return f(t)
}

// New builds a func(*T) Option wrapper for option constructors that never
// fail validation.
func New[T any](f func(*T)) Option[T] {
	return Func[T](func(t *T) error {
		f(t)

		return nil
	})
}

// Apply runs every option against t in order, stopping at the first
// error.
func Apply[T any](t *T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(t); err != nil {
			return err
		}
	}

	return nil
}

// NoError runs Apply and panics on error — used where the caller only
// ever passes option constructors that cannot fail, mirroring the
// teacher's own NoError helper.
func NoError[T any](t *T, opts ...Option[T]) {
	if err := Apply(t, opts...); err != nil {
		panic(err)
	}
}
