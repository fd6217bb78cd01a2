package ecs

import "reflect"

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	world         *World
	componentPtr  *T
	componentType reflect.Type
}

// NewSingleton creates a new Singleton accessor for the given world.
// If initializer is provided and the singleton doesn't exist in the world,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in the world after the call.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	if world.singleton(componentType) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		world.AddSingleton(value)
	}

	s := &Singleton[T]{
		world:         world,
		componentType: componentType,
	}
	s.updateCache()
	return s
}

// Init initializes the Singleton with a world reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(world *World) {
	s.world = world
	s.componentType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to the world.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr
}

// updateCache refreshes the cached pointer from the world
func (s *Singleton[T]) updateCache() {
	if s.world == nil {
		return
	}
	if ptr, ok := s.world.singleton(s.componentType).(*T); ok {
		s.componentPtr = ptr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton component has been added to the world
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr != nil
}
