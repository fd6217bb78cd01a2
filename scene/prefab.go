package scene

import (
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plus3/grove/ecs"
	"gopkg.in/yaml.v3"
)

// Name labels an entity in a hierarchy.
type Name string

// PrefabInstance records which prefab an entity was instantiated from.
type PrefabInstance struct {
	Prefab   uuid.UUID
	Instance uuid.UUID
}

// Register registers the scene component types with w. It is safe to call
// more than once.
func Register(w *ecs.World) {
	RegisterNode(w)
	ecs.RegisterComponent[Transform](w)
	ecs.RegisterComponent[Name](w, ecs.WithSparseArena())
	ecs.RegisterComponent[PrefabInstance](w, ecs.WithSparseArena())
}

// PrefabNode is one entry of a prefab. Children are linked by index: a node
// names its first child, and each child names its next sibling.
type PrefabNode struct {
	Name        string    `yaml:"name"`
	Transform   Transform `yaml:"transform"`
	FirstChild  *int      `yaml:"first_child,omitempty"`
	NextSibling *int      `yaml:"next_sibling,omitempty"`
}

// UnmarshalYAML decodes a node. A missing transform is the identity.
func (n *PrefabNode) UnmarshalYAML(node *yaml.Node) error {
	type plain PrefabNode
	raw := plain{Transform: NewTransform()}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*n = PrefabNode(raw)
	return nil
}

// Prefab is a hierarchy template stored as a flat node list. Node 0 is the root.
type Prefab struct {
	ID    uuid.UUID    `yaml:"id"`
	Name  string       `yaml:"name"`
	Nodes []PrefabNode `yaml:"nodes"`
}

// NewPrefab returns an empty prefab with a fresh id.
func NewPrefab(name string) *Prefab {
	return &Prefab{ID: uuid.New(), Name: name}
}

// Add appends a node under parent and returns its index. Pass -1 as parent
// for the root. Children keep the order they are added in.
func (p *Prefab) Add(parent int, name string, t Transform) int {
	index := len(p.Nodes)
	p.Nodes = append(p.Nodes, PrefabNode{Name: name, Transform: t})
	if parent < 0 || parent >= index {
		return index
	}

	link := &p.Nodes[parent].FirstChild
	for *link != nil {
		link = &p.Nodes[**link].NextSibling
	}
	*link = &index
	return index
}

// Validate checks that the node list describes a single tree rooted at node 0.
func (p *Prefab) Validate() error {
	if len(p.Nodes) == 0 {
		return errors.Wrap(ErrInvalidPrefab, "no nodes")
	}
	if p.Nodes[0].NextSibling != nil {
		return errors.Wrap(ErrInvalidPrefab, "root has a sibling")
	}

	refs := make([]int, len(p.Nodes))
	for i, n := range p.Nodes {
		for _, ref := range []*int{n.FirstChild, n.NextSibling} {
			if ref == nil {
				continue
			}
			if *ref <= 0 || *ref >= len(p.Nodes) {
				return errors.Wrapf(ErrInvalidPrefab, "node %d links to %d", i, *ref)
			}
			refs[*ref]++
			if refs[*ref] > 1 {
				return errors.Wrapf(ErrInvalidPrefab, "node %d is linked more than once", *ref)
			}
		}
	}

	visited := 0
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited++
		n := p.Nodes[i]
		if n.FirstChild != nil {
			stack = append(stack, *n.FirstChild)
		}
		if n.NextSibling != nil {
			stack = append(stack, *n.NextSibling)
		}
	}
	if visited != len(p.Nodes) {
		return errors.Wrapf(ErrInvalidPrefab, "%d nodes are unreachable from the root", len(p.Nodes)-visited)
	}
	return nil
}

func (p *Prefab) children(i int) []int {
	var out []int
	for c := p.Nodes[i].FirstChild; c != nil; c = p.Nodes[*c].NextSibling {
		out = append(out, *c)
	}
	return out
}

// Instantiate creates one entity per node and links them into a hierarchy.
// The returned entities follow the node order, so the root is first. The
// scene types must be registered with w.
func (p *Prefab) Instantiate(w *ecs.World) ([]ecs.Entity, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	instance := PrefabInstance{Prefab: p.ID, Instance: uuid.New()}
	entities := make([]ecs.Entity, len(p.Nodes))
	for i, n := range p.Nodes {
		b := ecs.With(w.Build(), n.Transform)
		b = ecs.With(b, Node{})
		b = ecs.With(b, instance)
		if n.Name != "" {
			b = ecs.With(b, Name(n.Name))
		}
		entities[i] = b.Finish()
	}

	nodes := ecs.Write[Node](w)
	defer nodes.Release()

	for i := range p.Nodes {
		// Attaching prepends, so walk the sibling chain backwards.
		children := p.children(i)
		slices.Reverse(children)
		for _, c := range children {
			SetParentUnchecked(nodes, entities[c], entities[i])
		}
	}
	return entities, nil
}

// NameReader is satisfied by both ecs.Fetch[Name] and ecs.FetchMut[Name].
type NameReader interface {
	Get(e ecs.Entity) (Name, bool)
}

// CapturePrefab builds a prefab from the hierarchy under root. Entities
// without a Transform are stored with the identity transform.
func CapturePrefab(name string, nodes NodeReader, transforms TransformReader, names NameReader, root ecs.Entity) *Prefab {
	p := NewPrefab(name)

	index := map[ecs.Entity]int{root: 0}
	order := []ecs.Entity{root}
	for e := range Descendants(nodes, root) {
		index[e] = len(order)
		order = append(order, e)
	}

	p.Nodes = make([]PrefabNode, len(order))
	for i, e := range order {
		pn := PrefabNode{Transform: NewTransform()}
		if t, ok := transforms.Get(e); ok {
			pn.Transform = t
		}
		if n, ok := names.Get(e); ok {
			pn.Name = string(n)
		}

		n, _ := nodes.Get(e)
		if c, ok := n.FirstChild(); ok {
			ci := index[c]
			pn.FirstChild = &ci
		}
		if s, ok := n.NextSibling(); ok && e != root {
			si := index[s]
			pn.NextSibling = &si
		}
		p.Nodes[i] = pn
	}
	return p
}

// LoadPrefab decodes and validates a YAML prefab.
func LoadPrefab(r io.Reader) (*Prefab, error) {
	var p Prefab
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(err, "decode prefab")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save encodes the prefab as YAML.
func (p *Prefab) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(err, "encode prefab")
	}
	return enc.Close()
}
