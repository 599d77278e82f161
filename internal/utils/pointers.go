// Package utils holds small helpers shared across the client.
package utils

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p, returning the zero value for a nil pointer.
func Value[T any](p *T) T {
	if p == nil {
		return *new(T)
	}
	return *p
}
