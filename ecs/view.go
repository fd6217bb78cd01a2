package ecs

import (
	"iter"
	"math"
	"reflect"
)

//go:generate go run ../cmd/viewgen -o view_generated.go

const unbounded = math.MaxUint32

// View is the set of live entities whose mask contains a query mask, limited
// to an index range. Views are cheap values; iterating one walks the slots of
// its range at that moment, so it can be iterated more than once.
type View struct {
	world *World
	mask  Mask
	start uint32
	end   uint32
}

func newView(w *World, mask Mask) View {
	return View{world: w, mask: mask, start: 0, end: unbounded}
}

// ViewTypes returns a view over the entities carrying every given type. It
// borrows no arena, so it filters by mask only. Unregistered types panic.
func (w *World) ViewTypes(types ...reflect.Type) View {
	var mask Mask
	for _, t := range types {
		mask.Set(w.cellOf(t).ordinal)
	}
	return newView(w, mask)
}

// Mask returns the component mask the view filters on.
func (v View) Mask() Mask {
	return v.mask
}

// Iter yields matching entities in ascending index order.
func (v View) Iter() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := range v.world.entities.iter(v.start, v.end) {
			if !v.world.masks[e.Index()].Contains(v.mask) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of slots the view spans. It is an upper bound on
// the number of entities Iter yields.
func (v View) Len() int {
	end := min(v.end, v.world.entities.capacity())
	if end <= v.start {
		return 0
	}
	return int(end - v.start)
}

// Count walks the view and returns the number of matching entities.
func (v View) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

// SplitAt divides the view into the first n slots and the rest.
func (v View) SplitAt(n int) (View, View) {
	mid := v.start + uint32(min(max(n, 0), v.Len()))
	left, right := v, v
	left.end = mid
	right.start = mid
	return left, right
}

// Split halves the view. It reports false when the view spans fewer than two
// slots and cannot be divided further.
func (v View) Split() (View, View, bool) {
	n := v.Len()
	if n < 2 {
		return v, View{world: v.world, mask: v.mask, start: v.start, end: v.start}, false
	}
	left, right := v.SplitAt(n / 2)
	return left, right, true
}
