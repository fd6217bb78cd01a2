package ecs

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

const writeLocked = -1

// borrowFlag tracks the live borrows of one arena: a count of readers, or
// writeLocked while a single writer holds it. Conflicting acquisitions panic,
// they never block.
type borrowFlag struct {
	state atomic.Int32
}

func (f *borrowFlag) acquireRead(t reflect.Type) {
	for {
		n := f.state.Load()
		if n == writeLocked {
			panic(fmt.Sprintf("ecs: %s is already borrowed for writing", t))
		}
		if f.state.CompareAndSwap(n, n+1) {
			return
		}
	}
}

func (f *borrowFlag) releaseRead() {
	f.state.Add(-1)
}

func (f *borrowFlag) acquireWrite(t reflect.Type) {
	if f.state.CompareAndSwap(0, writeLocked) {
		return
	}
	if n := f.state.Load(); n == writeLocked {
		panic(fmt.Sprintf("ecs: %s is already borrowed for writing", t))
	} else {
		panic(fmt.Sprintf("ecs: %s is borrowed by %d readers", t, n))
	}
}

func (f *borrowFlag) releaseWrite() {
	f.state.Store(0)
}

func (f *borrowFlag) readers() int {
	if n := f.state.Load(); n > 0 {
		return int(n)
	}
	return 0
}

func (f *borrowFlag) writeLocked() bool {
	return f.state.Load() == writeLocked
}

// borrowCount returns the number of live borrows across every arena of w.
func (w *World) borrowCount() int {
	n := 0
	for _, c := range w.cells {
		n += c.flag.readers()
		if c.flag.writeLocked() {
			n++
		}
	}
	return n
}

// Guard is a live borrow of a component arena.
type Guard interface {
	Release()
}

// ReleaseAll releases every guard in order.
func ReleaseAll(guards ...Guard) {
	for _, g := range guards {
		g.Release()
	}
}

// Fetch is a shared borrow of the arena of T. Any number of Fetch values for
// the same type may be live at once, but not alongside a FetchMut.
type Fetch[T any] struct {
	world    *World
	cell     *arenaCell
	arena    Arena[T]
	released bool
}

func newFetch[T any](w *World, c *arenaCell) *Fetch[T] {
	c.flag.acquireRead(c.typ)
	return &Fetch[T]{world: w, cell: c, arena: c.arena.(Arena[T])}
}

// Read borrows the arena of T for reading.
func Read[T any](w *World) *Fetch[T] {
	return newFetch[T](w, cellFor[T](w))
}

// IsAlive reports whether e refers to a live entity.
func (f *Fetch[T]) IsAlive(e Entity) bool {
	return f.world.entities.isAlive(e)
}

// Has reports whether e is alive and carries T.
func (f *Fetch[T]) Has(e Entity) bool {
	return f.world.has(e, f.cell.ordinal)
}

// Get returns a copy of the T of e. Stale handles report false.
func (f *Fetch[T]) Get(e Entity) (T, bool) {
	if !f.world.has(e, f.cell.ordinal) {
		var zero T
		return zero, false
	}
	return f.arena.Get(e.Index())
}

// GetUnchecked returns the T of e, skipping the handle and presence checks.
// Use it on entities yielded by a view over T.
func (f *Fetch[T]) GetUnchecked(e Entity) T {
	return f.arena.GetUnchecked(e.Index())
}

// Len returns the number of stored values.
func (f *Fetch[T]) Len() int {
	return f.arena.Len()
}

// Release ends the borrow. Calling it again, or on a nil Fetch, is a no-op.
func (f *Fetch[T]) Release() {
	if f == nil || f.released {
		return
	}
	f.released = true
	f.cell.flag.releaseRead()
}

// FetchMut is an exclusive borrow of the arena of T.
type FetchMut[T any] struct {
	world    *World
	cell     *arenaCell
	arena    Arena[T]
	released bool
}

func newFetchMut[T any](w *World, c *arenaCell) *FetchMut[T] {
	c.flag.acquireWrite(c.typ)
	return &FetchMut[T]{world: w, cell: c, arena: c.arena.(Arena[T])}
}

// Write borrows the arena of T for writing.
func Write[T any](w *World) *FetchMut[T] {
	return newFetchMut[T](w, cellFor[T](w))
}

func (f *FetchMut[T]) IsAlive(e Entity) bool {
	return f.world.entities.isAlive(e)
}

func (f *FetchMut[T]) Has(e Entity) bool {
	return f.world.has(e, f.cell.ordinal)
}

func (f *FetchMut[T]) Get(e Entity) (T, bool) {
	if !f.world.has(e, f.cell.ordinal) {
		var zero T
		return zero, false
	}
	return f.arena.Get(e.Index())
}

func (f *FetchMut[T]) GetUnchecked(e Entity) T {
	return f.arena.GetUnchecked(e.Index())
}

// GetMut returns a pointer to the T of e, or nil when e is stale or lacks T.
// The pointer must not outlive the borrow.
func (f *FetchMut[T]) GetMut(e Entity) *T {
	if !f.world.has(e, f.cell.ordinal) {
		return nil
	}
	return f.arena.GetMut(e.Index())
}

// GetMutUnchecked returns a pointer to the T slot of e without any check.
func (f *FetchMut[T]) GetMutUnchecked(e Entity) *T {
	return f.arena.GetMutUnchecked(e.Index())
}

// Insert stores v as the T of a live entity and returns the value it replaced.
// Dead handles are ignored.
func (f *FetchMut[T]) Insert(e Entity, v T) (T, bool) {
	if !f.world.entities.isAlive(e) {
		var zero T
		return zero, false
	}
	old, replaced := f.arena.Insert(e.Index(), v)
	f.world.masks[e.Index()].Set(f.cell.ordinal)
	return old, replaced
}

// Remove detaches T from e and returns it without disposing it.
func (f *FetchMut[T]) Remove(e Entity) (T, bool) {
	if !f.world.has(e, f.cell.ordinal) {
		var zero T
		return zero, false
	}
	f.world.masks[e.Index()].Unset(f.cell.ordinal)
	return f.arena.Remove(e.Index())
}

func (f *FetchMut[T]) Len() int {
	return f.arena.Len()
}

// Release ends the borrow. Calling it again is a no-op.
func (f *FetchMut[T]) Release() {
	if f == nil || f.released {
		return
	}
	f.released = true
	f.cell.flag.releaseWrite()
}
