package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems implement this interface and borrow the arenas they need
// through views inside Execute. Singleton fields are initialized on Register,
// and custom state fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Initializer is implemented by systems that need the World before their
// first frame, typically to register the component types they use.
type Initializer interface {
	Init(world *World)
}
