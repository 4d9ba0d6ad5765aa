package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// CoalescePtr is Coalesce for optional fields: a nil update keeps the current pointer.
func CoalescePtr[T any](update *T, current *T) *T {
	if update != nil {
		return update
	}
	return current
}

func Ptr[T any](v T) *T {
	return &v
}
