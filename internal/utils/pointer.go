package utils

// Ptr returns a pointer to v, so the address of a literal or computed value
// can be passed where a pointer is expected.
//
// Example:
//
//	col.pk = utils.Ptr(true)
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value p points to, or fallback when p is nil. It is the
// read side of [Ptr] for optional fields carried as pointers.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
