package ecs

import "github.com/kamstrup/intmap"

// SparseArena is an Arena backed by an open-addressing hash map keyed by
// entity index. Values are boxed, so pointers from GetMut stay valid until
// the value is removed.
type SparseArena[T any] struct {
	values *intmap.Map[uint32, *T]
}

// NewSparseArena creates a SparseArena with room for capacity values.
func NewSparseArena[T any](capacity int) *SparseArena[T] {
	return &SparseArena[T]{values: intmap.New[uint32, *T](capacity)}
}

func (a *SparseArena[T]) Has(index uint32) bool {
	return a.values.Has(index)
}

func (a *SparseArena[T]) Get(index uint32) (T, bool) {
	p, ok := a.values.Get(index)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

func (a *SparseArena[T]) GetMut(index uint32) *T {
	p, _ := a.values.Get(index)
	return p
}

func (a *SparseArena[T]) GetUnchecked(index uint32) T {
	p, _ := a.values.Get(index)
	return *p
}

func (a *SparseArena[T]) GetMutUnchecked(index uint32) *T {
	p, _ := a.values.Get(index)
	return p
}

func (a *SparseArena[T]) Insert(index uint32, v T) (T, bool) {
	if p, ok := a.values.Get(index); ok {
		old := *p
		*p = v
		return old, true
	}
	a.values.Put(index, &v)
	var zero T
	return zero, false
}

func (a *SparseArena[T]) Remove(index uint32) (T, bool) {
	p, ok := a.values.Get(index)
	if !ok {
		var zero T
		return zero, false
	}
	a.values.Del(index)
	return *p, true
}

func (a *SparseArena[T]) Len() int {
	return a.values.Len()
}
