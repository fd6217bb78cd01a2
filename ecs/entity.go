package ecs

import (
	"fmt"
	"iter"
	"math"
)

// Entity encodes both the slot generation (upper 32 bits) and the slot index (lower 32 bits)
type Entity uint64

// NewEntity creates an Entity from a slot index and generation
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d, %d)", e.Index(), e.Generation())
}

const noFreeSlot = math.MaxUint32

// slot is one entry of the handle allocator. Dead slots are chained
// into the free list through next.
type slot struct {
	generation uint32
	next       uint32
	alive      bool
}

// entityPool issues reusable (index, generation) handles.
type entityPool struct {
	slots    []slot
	freeHead uint32
	alive    int
}

func newEntityPool(capacity int) entityPool {
	return entityPool{
		slots:    make([]slot, 0, capacity),
		freeHead: noFreeSlot,
	}
}

// create pops a free slot, or appends a new one with generation 0.
func (p *entityPool) create() Entity {
	p.alive++

	if p.freeHead != noFreeSlot {
		index := p.freeHead
		s := &p.slots[index]
		p.freeHead = s.next
		s.next = noFreeSlot
		s.alive = true
		return NewEntity(index, s.generation)
	}

	index := uint32(len(p.slots))
	p.slots = append(p.slots, slot{next: noFreeSlot, alive: true})
	return NewEntity(index, 0)
}

// free recycles the slot of e. Stale or already freed handles are ignored.
func (p *entityPool) free(e Entity) bool {
	if !p.isAlive(e) {
		return false
	}

	index := e.Index()
	s := &p.slots[index]
	s.alive = false
	s.generation++
	s.next = p.freeHead
	p.freeHead = index
	p.alive--
	return true
}

func (p *entityPool) isAlive(e Entity) bool {
	index := e.Index()
	if int(index) >= len(p.slots) {
		return false
	}
	s := p.slots[index]
	return s.alive && s.generation == e.Generation()
}

// aliveAt returns the live handle stored at index, if any.
func (p *entityPool) aliveAt(index uint32) (Entity, bool) {
	if int(index) >= len(p.slots) {
		return 0, false
	}
	s := p.slots[index]
	if !s.alive {
		return 0, false
	}
	return NewEntity(index, s.generation), true
}

func (p *entityPool) len() int {
	return p.alive
}

func (p *entityPool) capacity() uint32 {
	return uint32(len(p.slots))
}

// iter yields the live handles with index in [start, end) in ascending order.
// The upper bound is clamped to the slot count at each step.
func (p *entityPool) iter(start, end uint32) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := start; i < end && int(i) < len(p.slots); i++ {
			e, ok := p.aliveAt(i)
			if !ok {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
