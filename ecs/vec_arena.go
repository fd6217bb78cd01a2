package ecs

const (
	vecBlockSize = 64
)

// VecArena is a dense Arena. Values live in fixed-size blocks indexed directly
// by entity index, so pointers handed out by GetMut stay valid while the arena
// grows. Each block carries a bitmap of its filled slots.
type VecArena[T any] struct {
	blocks []*[vecBlockSize]T
	filled []uint64
	count  int
}

// NewVecArena creates a VecArena with room for capacity values.
func NewVecArena[T any](capacity int) *VecArena[T] {
	numBlocks := (capacity + vecBlockSize - 1) / vecBlockSize
	a := &VecArena[T]{
		blocks: make([]*[vecBlockSize]T, 0, numBlocks),
		filled: make([]uint64, 0, numBlocks),
	}
	for range numBlocks {
		a.grow()
	}
	return a
}

func (a *VecArena[T]) grow() {
	a.blocks = append(a.blocks, new([vecBlockSize]T))
	a.filled = append(a.filled, 0)
}

func split(index uint32) (int, uint64) {
	return int(index / vecBlockSize), uint64(1) << (index % vecBlockSize)
}

// Has checks if a value exists at the given index.
func (a *VecArena[T]) Has(index uint32) bool {
	blockIdx, bit := split(index)
	if blockIdx >= len(a.filled) {
		return false
	}
	return a.filled[blockIdx]&bit != 0
}

func (a *VecArena[T]) Get(index uint32) (T, bool) {
	if !a.Has(index) {
		var zero T
		return zero, false
	}
	return a.blocks[index/vecBlockSize][index%vecBlockSize], true
}

func (a *VecArena[T]) GetMut(index uint32) *T {
	if !a.Has(index) {
		return nil
	}
	return &a.blocks[index/vecBlockSize][index%vecBlockSize]
}

func (a *VecArena[T]) GetUnchecked(index uint32) T {
	return a.blocks[index/vecBlockSize][index%vecBlockSize]
}

func (a *VecArena[T]) GetMutUnchecked(index uint32) *T {
	return &a.blocks[index/vecBlockSize][index%vecBlockSize]
}

func (a *VecArena[T]) Insert(index uint32, v T) (T, bool) {
	blockIdx, bit := split(index)
	for blockIdx >= len(a.blocks) {
		a.grow()
	}

	slot := &a.blocks[blockIdx][index%vecBlockSize]
	if a.filled[blockIdx]&bit != 0 {
		old := *slot
		*slot = v
		return old, true
	}

	*slot = v
	a.filled[blockIdx] |= bit
	a.count++
	var zero T
	return zero, false
}

func (a *VecArena[T]) Remove(index uint32) (T, bool) {
	var zero T
	if !a.Has(index) {
		return zero, false
	}

	blockIdx, bit := split(index)
	slot := &a.blocks[blockIdx][index%vecBlockSize]
	old := *slot
	*slot = zero // Zero out the value
	a.filled[blockIdx] &^= bit
	a.count--
	return old, true
}

func (a *VecArena[T]) Len() int {
	return a.count
}

// Blocks returns the number of allocated blocks.
func (a *VecArena[T]) Blocks() int {
	return len(a.blocks)
}
