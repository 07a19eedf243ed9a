package syntax

// Arena is an append-only store with 1-based indices, so the zero index stays
// free as the "no value" sentinel.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose backing slice starts at capHint capacity.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns a pointer into the arena, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. Callers must not append.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Len returns the number of allocated elements.
func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
