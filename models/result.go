package models

// Result holds either a value or the error that prevented producing it.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failure
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result holds a value
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Error returns the failure, or nil
func (r Result[T]) Error() error {
	return r.err
}

// Unwrap returns the value and the error
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// OrElse returns the value, or def when the result is a failure
func (r Result[T]) OrElse(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}
