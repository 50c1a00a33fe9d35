package entities

// FetchResult is the outcome of a best-effort upstream fetch. On failure
// Value holds the empty value and Err the cause, so callers can tell an
// empty answer from a failed call.
type FetchResult[T any] struct {
	Value T
	Err   error
}

// OK reports whether the fetch succeeded
func (r FetchResult[T]) OK() bool {
	return r.Err == nil
}

// Succeeded wraps a successful value
func Succeeded[T any](v T) FetchResult[T] {
	return FetchResult[T]{Value: v}
}

// Failed wraps an error with the given fallback value
func Failed[T any](fallback T, err error) FetchResult[T] {
	return FetchResult[T]{Value: fallback, Err: err}
}
