// Package cascade evaluates ordered candidate sources lazily and stops at the
// first one that produces a definitive answer.
//
// A Lookup reports one of three outcomes:
//
//	(v, true, nil)   the source supplied v; evaluation stops
//	(_, false, nil)  the source is absent; evaluation continues
//	(_, _, err)      the source is present but invalid; evaluation stops
//
// Only absence lets a lower-precedence source be consulted, so an invalid
// value is never masked by a valid one further down the list.
package cascade

// Lookup is one candidate source in a cascade
type Lookup[T any] func() (T, bool, error)

// First runs lookups in order and returns the first found value.
// found is false when every lookup reported absence.
func First[T any](lookups ...Lookup[T]) (value T, found bool, err error) {
	for _, lookup := range lookups {
		v, ok, err := lookup()
		if err != nil {
			var zero T
			return zero, false, err
		}
		if ok {
			return v, true, nil
		}
	}
	var zero T
	return zero, false, nil
}

// FirstOr is First with a fallback for the all-absent case
func FirstOr[T any](fallback T, lookups ...Lookup[T]) (T, error) {
	v, ok, err := First(lookups...)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}

// Found adapts an infallible (value, ok) lookup
func Found[T any](fn func() (T, bool)) Lookup[T] {
	return func() (T, bool, error) {
		v, ok := fn()
		return v, ok, nil
	}
}
