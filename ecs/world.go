package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
)

// arenaCell is the type-erased handle of one registered arena. The closures
// are bound to the concrete Arena[T] at registration.
type arenaCell struct {
	typ     reflect.Type
	ordinal int
	backend Backend
	flag    borrowFlag
	arena   any

	erase    func(index uint32)
	onRemove func(w *World, e Entity)
	value    func(index uint32) (any, bool)
	pointer  func(index uint32) any
	count    func() int
}

// withWrite runs fn while holding the write borrow of the cell.
func (c *arenaCell) withWrite(fn func()) {
	c.flag.acquireWrite(c.typ)
	defer c.flag.releaseWrite()
	fn()
}

// World owns the entity allocator, one presence mask per slot and one arena
// per registered component type. A World is not safe for concurrent
// structural mutation; concurrent readers go through views and fetches.
type World struct {
	entities   entityPool
	masks      []Mask
	types      map[reflect.Type]int
	cells      []*arenaCell
	singletons map[reflect.Type]any
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return NewWorldWithCapacity(0)
}

// NewWorldWithCapacity creates an empty World with room for capacity entities.
func NewWorldWithCapacity(capacity int) *World {
	return &World{
		entities:   newEntityPool(capacity),
		masks:      make([]Mask, 0, capacity),
		types:      make(map[reflect.Type]int),
		singletons: make(map[reflect.Type]any),
	}
}

// RegisterComponent assigns T the next free ordinal and creates its arena.
// Registering a type twice returns the existing ordinal and ignores opts.
func RegisterComponent[T any](w *World, opts ...ArenaOption) int {
	t := reflect.TypeFor[T]()
	if ord, ok := w.types[t]; ok {
		return ord
	}
	if len(w.cells) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: cannot register %s: limit of %d component types reached", t, MaxComponentTypes))
	}

	cfg := arenaConfig{backend: DenseBackend}
	for _, opt := range opts {
		opt(&cfg)
	}

	arena := newArena[T](cfg)
	cell := &arenaCell{
		typ:     t,
		ordinal: len(w.cells),
		backend: cfg.backend,
		arena:   arena,
		erase: func(index uint32) {
			if v, ok := arena.Remove(index); ok {
				dispose(&v)
			}
		},
		value: func(index uint32) (any, bool) {
			v, ok := arena.Get(index)
			if !ok {
				return nil, false
			}
			return v, true
		},
		pointer: func(index uint32) any {
			if p := arena.GetMut(index); p != nil {
				return p
			}
			return nil
		},
		count: arena.Len,
	}

	w.types[t] = cell.ordinal
	w.cells = append(w.cells, cell)
	return cell.ordinal
}

// OnRemove installs fn to run before the T of an entity is dropped by Remove
// or Free. fn runs with no arena borrowed, so it may fetch any type itself.
// A later call replaces fn. Fetch-level removal does not run it.
func OnRemove[T any](w *World, fn func(w *World, e Entity)) {
	cellFor[T](w).onRemove = fn
}

// IsRegistered reports whether T has an arena in w.
func IsRegistered[T any](w *World) bool {
	_, ok := w.types[reflect.TypeFor[T]()]
	return ok
}

func (w *World) cellOf(t reflect.Type) *arenaCell {
	ord, ok := w.types[t]
	if !ok {
		panic(fmt.Sprintf("ecs: component %s is not registered", t))
	}
	return w.cells[ord]
}

func cellFor[T any](w *World) *arenaCell {
	return w.cellOf(reflect.TypeFor[T]())
}

// Create allocates an entity with no components.
func (w *World) Create() Entity {
	e := w.entities.create()
	for int(e.Index()) >= len(w.masks) {
		w.masks = append(w.masks, Mask{})
	}
	w.masks[e.Index()] = Mask{}
	return e
}

// Free disposes every component of e and recycles its slot. It reports
// false for stale or already freed handles.
func (w *World) Free(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}

	index := e.Index()
	for _, ord := range w.masks[index].Bits() {
		if hook := w.cells[ord].onRemove; hook != nil {
			hook(w, e)
		}
	}
	if !w.entities.isAlive(e) {
		return false
	}
	for _, ord := range w.masks[index].Bits() {
		c := w.cells[ord]
		c.withWrite(func() { c.erase(index) })
	}
	w.masks[index] = Mask{}
	return w.entities.free(e)
}

// IsAlive reports whether e refers to a live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.len()
}

func (w *World) has(e Entity, ordinal int) bool {
	return w.entities.isAlive(e) && w.masks[e.Index()].Has(ordinal)
}

// Mask returns the presence mask of e, or an empty mask for a stale handle.
func (w *World) Mask(e Entity) Mask {
	if !w.entities.isAlive(e) {
		return Mask{}
	}
	return w.masks[e.Index()]
}

// Add stores v as the T of e and returns the value it replaced. The replaced
// value is not disposed. Adding to a dead entity does nothing.
func Add[T any](w *World, e Entity, v T) (T, bool) {
	c := cellFor[T](w)
	if !w.entities.isAlive(e) {
		var zero T
		return zero, false
	}

	var (
		old      T
		replaced bool
	)
	c.withWrite(func() {
		old, replaced = c.arena.(Arena[T]).Insert(e.Index(), v)
		w.masks[e.Index()].Set(c.ordinal)
	})
	return old, replaced
}

// AddDefault adds the default value of T to e.
func AddDefault[T any](w *World, e Entity) (T, bool) {
	return Add(w, e, defaultValue[T]())
}

// Remove detaches T from e and hands it back without disposing it.
func Remove[T any](w *World, e Entity) (T, bool) {
	c := cellFor[T](w)
	if !w.has(e, c.ordinal) {
		var zero T
		return zero, false
	}
	if c.onRemove != nil {
		c.onRemove(w, e)
		if !w.has(e, c.ordinal) {
			var zero T
			return zero, false
		}
	}

	var (
		v  T
		ok bool
	)
	c.withWrite(func() {
		w.masks[e.Index()].Unset(c.ordinal)
		v, ok = c.arena.(Arena[T]).Remove(e.Index())
	})
	return v, ok
}

// Has reports whether e is alive and carries T.
func Has[T any](w *World, e Entity) bool {
	return w.has(e, cellFor[T](w).ordinal)
}

// Get returns a copy of the T of e.
func Get[T any](w *World, e Entity) (T, bool) {
	f := Read[T](w)
	defer f.Release()
	return f.Get(e)
}

// GetMut calls fn with a pointer to the T of e and reports whether e had one.
func GetMut[T any](w *World, e Entity, fn func(*T)) bool {
	f := Write[T](w)
	defer f.Release()
	p := f.GetMut(e)
	if p == nil {
		return false
	}
	fn(p)
	return true
}

// Entities returns a view over every live entity.
func (w *World) Entities() View {
	return newView(w, Mask{})
}

// All yields every live entity in ascending index order.
func (w *World) All() iter.Seq[Entity] {
	return w.entities.iter(0, unbounded)
}

// ComponentTypes returns the types e carries, in registration order.
func (w *World) ComponentTypes(e Entity) []reflect.Type {
	if !w.entities.isAlive(e) {
		return nil
	}
	bits := w.masks[e.Index()].Bits()
	types := make([]reflect.Type, 0, len(bits))
	for _, ord := range bits {
		types = append(types, w.cells[ord].typ)
	}
	return types
}

// Component returns a copy of the component of type t on e.
func (w *World) Component(e Entity, t reflect.Type) (any, bool) {
	c := w.cellOf(t)
	if !w.has(e, c.ordinal) {
		return nil, false
	}
	c.flag.acquireRead(c.typ)
	defer c.flag.releaseRead()
	return c.value(e.Index())
}

// ModifyComponent calls fn with a pointer to the component of type t on e
// while holding its write borrow. fn receives a *T boxed in an any.
func (w *World) ModifyComponent(e Entity, t reflect.Type, fn func(ptr any)) bool {
	c := w.cellOf(t)
	if !w.has(e, c.ordinal) {
		return false
	}
	found := false
	c.withWrite(func() {
		if p := c.pointer(e.Index()); p != nil {
			found = true
			fn(p)
		}
	})
	return found
}

// Types returns every registered component type in ordinal order.
func (w *World) Types() []reflect.Type {
	types := make([]reflect.Type, len(w.cells))
	for i, c := range w.cells {
		types[i] = c.typ
	}
	return types
}

// TypeByName finds a registered component type by its reflect name.
func (w *World) TypeByName(name string) (reflect.Type, bool) {
	for _, c := range w.cells {
		if c.typ.Name() == name || c.typ.String() == name {
			return c.typ, true
		}
	}
	return nil, false
}

// ArenaStats describes the state of one component arena.
type ArenaStats struct {
	Type        string
	Ordinal     int
	Backend     Backend
	Count       int
	Readers     int
	WriteLocked bool
}

// WorldStats is a snapshot of a World.
type WorldStats struct {
	EntityCount    int
	SlotCount      int
	ComponentTypes int
	Arenas         []ArenaStats
	SingletonCount int
	SingletonTypes []string
}

// Stats collects a snapshot of entity, arena and singleton counts.
func (w *World) Stats() WorldStats {
	stats := WorldStats{
		EntityCount:    w.entities.len(),
		SlotCount:      int(w.entities.capacity()),
		ComponentTypes: len(w.cells),
		Arenas:         make([]ArenaStats, 0, len(w.cells)),
		SingletonCount: len(w.singletons),
		SingletonTypes: make([]string, 0, len(w.singletons)),
	}
	for _, c := range w.cells {
		stats.Arenas = append(stats.Arenas, ArenaStats{
			Type:        c.typ.String(),
			Ordinal:     c.ordinal,
			Backend:     c.backend,
			Count:       c.count(),
			Readers:     c.flag.readers(),
			WriteLocked: c.flag.writeLocked(),
		})
	}
	for t := range w.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)
	return stats
}

// AddSingleton stores value as the single instance of its type, replacing
// any previous one.
func (w *World) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if existing, ok := w.singletons[t]; ok {
		reflect.ValueOf(existing).Elem().Set(reflect.ValueOf(value))
		return
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	w.singletons[t] = ptr.Interface()
}

// RemoveSingleton drops the singleton of type t.
func (w *World) RemoveSingleton(t reflect.Type) {
	delete(w.singletons, t)
}

func (w *World) singleton(t reflect.Type) any {
	return w.singletons[t]
}

// ReadSingleton points target, a **T, at the stored singleton of type T.
// It reports false when no such singleton exists.
func (w *World) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Ptr {
		panic("ecs: ReadSingleton target must be a pointer to a pointer")
	}
	stored, ok := w.singletons[v.Elem().Type().Elem()]
	if !ok {
		return false
	}
	v.Elem().Set(reflect.ValueOf(stored))
	return true
}
