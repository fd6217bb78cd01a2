package ecs

// Arena is the typed storage of one component type, addressed by entity index.
// Arenas know nothing about generations: the World checks handle validity and
// presence before it touches an arena, and the Unchecked variants are reserved
// for callers that already proved the index holds a value.
type Arena[T any] interface {
	// Get returns a copy of the value at index.
	Get(index uint32) (T, bool)
	// GetMut returns a pointer to the value at index, or nil when it is empty.
	GetMut(index uint32) *T
	// GetUnchecked returns the value at index without a presence check.
	GetUnchecked(index uint32) T
	// GetMutUnchecked returns a pointer to the slot at index without a presence check.
	GetMutUnchecked(index uint32) *T
	// Insert stores v at index and returns the previous value, if there was one.
	Insert(index uint32, v T) (T, bool)
	// Remove empties the slot at index and returns the value it held.
	Remove(index uint32) (T, bool)
	Has(index uint32) bool
	Len() int
}

// Backend selects the storage shape of a component type.
type Backend int

const (
	// DenseBackend stores values in blocks indexed directly by entity index.
	// Use it for components most entities carry.
	DenseBackend Backend = iota
	// SparseBackend stores values in a hash map keyed by entity index.
	// Use it for components only a minority of entities carry.
	SparseBackend
)

func (b Backend) String() string {
	switch b {
	case DenseBackend:
		return "dense"
	case SparseBackend:
		return "sparse"
	default:
		return "unknown"
	}
}

type arenaConfig struct {
	backend  Backend
	capacity int
}

// ArenaOption configures the storage of a component type at registration.
type ArenaOption func(*arenaConfig)

// WithSparseArena stores the component in a SparseArena.
func WithSparseArena() ArenaOption {
	return func(c *arenaConfig) {
		c.backend = SparseBackend
	}
}

// WithDenseArena stores the component in a VecArena. This is the default.
func WithDenseArena() ArenaOption {
	return func(c *arenaConfig) {
		c.backend = DenseBackend
	}
}

// WithCapacity preallocates room for n values.
func WithCapacity(n int) ArenaOption {
	return func(c *arenaConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

func newArena[T any](cfg arenaConfig) Arena[T] {
	if cfg.backend == SparseBackend {
		return NewSparseArena[T](cfg.capacity)
	}
	return NewVecArena[T](cfg.capacity)
}

// Disposer is implemented by components that release external resources.
// The World calls Dispose on every component of an entity it frees.
type Disposer interface {
	Dispose()
}

// Defaulter is implemented by components whose zero value is not a usable
// default. AddDefault and WithDefault call SetDefaults on the fresh value.
type Defaulter interface {
	SetDefaults()
}

func dispose[T any](v *T) {
	if d, ok := any(v).(Disposer); ok {
		d.Dispose()
	}
}

func defaultValue[T any]() T {
	var v T
	if d, ok := any(&v).(Defaulter); ok {
		d.SetDefaults()
	}
	return v
}
