package scene

import "github.com/pkg/errors"

var (
	// ErrNonTransformFound is returned when an entity is dead or lacks the
	// component an operation needs.
	ErrNonTransformFound = errors.New("no transform found")
	// ErrCanNotAttachSelfAsParent is returned when a relink would make an
	// entity its own ancestor, or the parent does not exist.
	ErrCanNotAttachSelfAsParent = errors.New("node can not set self as parent")
	// ErrCanNotInverseTransform is returned for transforms with zero scale.
	ErrCanNotInverseTransform = errors.New("the transform can not be inversed")
	// ErrInvalidPrefab is returned when a prefab's node list is malformed.
	ErrInvalidPrefab = errors.New("invalid prefab")
)
