package scene

import (
	"iter"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/plus3/grove/ecs"
)

// link is an optional entity reference.
type link struct {
	ent ecs.Entity
	set bool
}

func some(e ecs.Entity) link {
	return link{ent: e, set: true}
}

func (l link) get() (ecs.Entity, bool) {
	return l.ent, l.set
}

// Node places an entity in a hierarchy. Links are entity handles resolved
// through the Node arena, so the tree lives entirely in component storage.
// The zero value is a detached root.
type Node struct {
	parent     link
	firstChild link
	nextSib    link
	prevSib    link
}

// Parent returns the parent node.
func (n Node) Parent() (ecs.Entity, bool) {
	return n.parent.get()
}

func (n Node) FirstChild() (ecs.Entity, bool) {
	return n.firstChild.get()
}

func (n Node) NextSibling() (ecs.Entity, bool) {
	return n.nextSib.get()
}

func (n Node) PrevSibling() (ecs.Entity, bool) {
	return n.prevSib.get()
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return !n.firstChild.set
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return !n.parent.set
}

// RegisterNode registers Node with w. Removing a Node through Remove or
// Free splices the entity out of its hierarchy first: its siblings are
// relinked and its children become roots.
func RegisterNode(w *ecs.World) {
	ecs.RegisterComponent[Node](w)
	ecs.OnRemove[Node](w, func(w *ecs.World, e ecs.Entity) {
		nodes := ecs.Write[Node](w)
		defer nodes.Release()
		detach(nodes, e)
	})
}

// detach unlinks e from its parent and siblings and turns each of its
// children into a root that keeps its own subtree.
func detach(nodes *ecs.FetchMut[Node], e ecs.Entity) {
	RemoveFromParent(nodes, e)

	n := nodes.GetMut(e)
	if n == nil {
		return
	}
	cursor := n.firstChild
	n.firstChild = link{}
	for cursor.set {
		c := nodes.GetMutUnchecked(cursor.ent)
		next := c.nextSib
		c.parent, c.nextSib, c.prevSib = link{}, link{}, link{}
		cursor = next
	}
}

// NodeReader is satisfied by both ecs.Fetch[Node] and ecs.FetchMut[Node].
type NodeReader interface {
	Get(e ecs.Entity) (Node, bool)
}

// SetParent attaches child to parent as its first child, detaching it from
// its previous parent and siblings. Both entities receive a Node if they lack
// one. It refuses links that would put child among its own ancestors.
func SetParent(nodes *ecs.FetchMut[Node], child, parent ecs.Entity) error {
	if !nodes.IsAlive(child) {
		return errors.Wrapf(ErrNonTransformFound, "child %v", child)
	}
	if parent == child || !nodes.IsAlive(parent) {
		return errors.Wrapf(ErrCanNotAttachSelfAsParent, "attach %v to %v", child, parent)
	}
	if IsAncestor(nodes, parent, child) {
		return errors.Wrapf(ErrCanNotAttachSelfAsParent, "%v is a descendant of %v", parent, child)
	}

	ensureNode(nodes, child)
	ensureNode(nodes, parent)
	SetParentUnchecked(nodes, child, parent)
	return nil
}

// SetParentUnchecked relinks like SetParent without any validation. Both
// entities must be alive and carry a Node, and parent must not be a
// descendant of child.
func SetParentUnchecked(nodes *ecs.FetchMut[Node], child, parent ecs.Entity) {
	RemoveFromParent(nodes, child)

	p := nodes.GetMutUnchecked(parent)
	next := p.firstChild
	p.firstChild = some(child)

	c := nodes.GetMutUnchecked(child)
	c.parent = some(parent)
	c.nextSib = next

	if e, ok := next.get(); ok {
		nodes.GetMutUnchecked(e).prevSib = some(child)
	}
}

// RemoveFromParent detaches child from its parent and siblings. Children of
// child are not affected. Roots and entities without a Node are left alone.
func RemoveFromParent(nodes *ecs.FetchMut[Node], child ecs.Entity) {
	n := nodes.GetMut(child)
	if n == nil {
		return
	}

	parent, next, prev := n.parent, n.nextSib, n.prevSib
	n.parent, n.nextSib, n.prevSib = link{}, link{}, link{}

	if e, ok := next.get(); ok {
		nodes.GetMutUnchecked(e).prevSib = prev
	}

	if e, ok := prev.get(); ok {
		nodes.GetMutUnchecked(e).nextSib = next
	} else if p, ok := parent.get(); ok {
		nodes.GetMutUnchecked(p).firstChild = next
	}
}

func ensureNode(nodes *ecs.FetchMut[Node], e ecs.Entity) {
	if !nodes.Has(e) {
		nodes.Insert(e, Node{})
	}
}

// Parent returns the parent of e.
func Parent(nodes NodeReader, e ecs.Entity) (ecs.Entity, bool) {
	n, ok := nodes.Get(e)
	if !ok {
		return 0, false
	}
	return n.Parent()
}

// IsRoot reports whether e has no parent. Entities without a Node are roots.
func IsRoot(nodes NodeReader, e ecs.Entity) bool {
	n, _ := nodes.Get(e)
	return n.IsRoot()
}

// IsLeaf reports whether e has no children.
func IsLeaf(nodes NodeReader, e ecs.Entity) bool {
	n, _ := nodes.Get(e)
	return n.IsLeaf()
}

// Ancestors yields the parent of e, then its parent, up to the root.
func Ancestors(nodes NodeReader, e ecs.Entity) iter.Seq[ecs.Entity] {
	return func(yield func(ecs.Entity) bool) {
		n, _ := nodes.Get(e)
		cursor := n.parent
		for cursor.set {
			if !yield(cursor.ent) {
				return
			}
			n, _ = nodes.Get(cursor.ent)
			cursor = n.parent
		}
	}
}

// Children yields the direct children of e, most recently attached first.
func Children(nodes NodeReader, e ecs.Entity) iter.Seq[ecs.Entity] {
	return func(yield func(ecs.Entity) bool) {
		n, _ := nodes.Get(e)
		cursor := n.firstChild
		for cursor.set {
			if !yield(cursor.ent) {
				return
			}
			n, _ = nodes.Get(cursor.ent)
			cursor = n.nextSib
		}
	}
}

// Descendants yields every entity below e in depth-first pre-order.
func Descendants(nodes NodeReader, e ecs.Entity) iter.Seq[ecs.Entity] {
	return func(yield func(ecs.Entity) bool) {
		root, _ := nodes.Get(e)
		cursor := root.firstChild
		for cursor.set {
			if !yield(cursor.ent) {
				return
			}
			cursor = nextInPreOrder(nodes, e, cursor.ent)
		}
	}
}

// nextInPreOrder returns the entity after current in a pre-order walk of the
// subtree under root.
func nextInPreOrder(nodes NodeReader, root, current ecs.Entity) link {
	n, _ := nodes.Get(current)
	if n.firstChild.set {
		return n.firstChild
	}
	if n.nextSib.set {
		return n.nextSib
	}

	// Climb back up until an ancestor below root has a next sibling.
	for n.parent.set && n.parent.ent != root {
		n, _ = nodes.Get(n.parent.ent)
		if n.nextSib.set {
			return n.nextSib
		}
	}
	return link{}
}

// IsAncestor reports whether ancestor is among the ancestors of e.
func IsAncestor(nodes NodeReader, e, ancestor ecs.Entity) bool {
	for v := range Ancestors(nodes, e) {
		if v == ancestor {
			return true
		}
	}
	return false
}

// Roots yields the entities of view that are not attached to a parent.
func Roots(view ecs.View, nodes NodeReader) iter.Seq[ecs.Entity] {
	return func(yield func(ecs.Entity) bool) {
		for e := range view.Iter() {
			if IsRoot(nodes, e) && !yield(e) {
				return
			}
		}
	}
}

// Delete frees e and every entity below it. It returns the freed entities
// with e first and the rest in pre-order, or nil when e is dead.
func Delete(w *ecs.World, e ecs.Entity) []ecs.Entity {
	if !w.IsAlive(e) {
		return nil
	}

	nodes := ecs.Read[Node](w)
	removed := append([]ecs.Entity{e}, slices.Collect(Descendants(nodes, e))...)
	nodes.Release()

	// Reverse pre-order frees every child before its parent.
	for _, v := range slices.Backward(removed) {
		w.Free(v)
	}
	return removed
}

// Find resolves a slash separated path of names. The first name selects a
// root of view, and each following name one of the previous entity's
// children. Empty path segments are ignored.
func Find(view ecs.View, nodes NodeReader, names NameReader, path string) (ecs.Entity, bool) {
	segments := pathSegments(path)
	if len(segments) == 0 {
		return 0, false
	}
	for root := range Roots(view, nodes) {
		if n, ok := names.Get(root); ok && string(n) == segments[0] {
			return findFrom(nodes, names, root, segments[1:])
		}
	}
	return 0, false
}

// FindFrom resolves a slash separated path of names below root. An empty
// path resolves to root itself.
func FindFrom(nodes NodeReader, names NameReader, root ecs.Entity, path string) (ecs.Entity, bool) {
	return findFrom(nodes, names, root, pathSegments(path))
}

func findFrom(nodes NodeReader, names NameReader, root ecs.Entity, segments []string) (ecs.Entity, bool) {
	cursor := root
	for _, segment := range segments {
		found := false
		for child := range Children(nodes, cursor) {
			if n, ok := names.Get(child); ok && string(n) == segment {
				cursor = child
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return cursor, true
}

func pathSegments(path string) []string {
	return slices.DeleteFunc(strings.Split(path, "/"), func(s string) bool {
		return s == ""
	})
}
