package invoices

// provider lazily yields a candidate value; ok is false when the source is absent.
type provider[T any] func() (value T, ok bool)

// firstOf evaluates providers in order and returns the first value produced.
func firstOf[T any](providers ...provider[T]) (T, bool) {
	for _, p := range providers {
		if value, ok := p(); ok {
			return value, true
		}
	}
	var zero T
	return zero, false
}

// firstOr is firstOf with a terminal default.
func firstOr[T any](fallback T, providers ...provider[T]) T {
	if value, ok := firstOf(providers...); ok {
		return value
	}
	return fallback
}

// known adapts an already computed (value, ok) pair into a provider.
func known[T any](value T, ok bool) provider[T] {
	return func() (T, bool) { return value, ok }
}
