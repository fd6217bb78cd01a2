package scene_test

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x, y, z float32) scene.Transform {
	t := scene.NewTransform()
	t.Position = mgl32.Vec3{x, y, z}
	return t
}

func TestPrefabInstantiate(t *testing.T) {
	p := scene.NewPrefab("robot")
	body := p.Add(-1, "body", at(0, 1, 0))
	head := p.Add(body, "head", at(0, 1, 0))
	arm := p.Add(body, "arm", at(1, 0, 0))
	p.Add(arm, "hand", at(1, 0, 0))
	require.NoError(t, p.Validate())
	assert.Equal(t, 0, body)
	assert.Equal(t, 1, head)

	w := newSceneWorld()
	entities, err := p.Instantiate(w)
	require.NoError(t, err)
	require.Len(t, entities, 4)

	nodes := ecs.Read[scene.Node](w)
	transforms := ecs.Read[scene.Transform](w)
	names := ecs.Read[scene.Name](w)
	defer ecs.ReleaseAll(nodes, transforms, names)

	root := entities[0]
	assert.Equal(t, []ecs.Entity{entities[1], entities[2]}, slices.Collect(scene.Children(nodes, root)))
	assert.Equal(t, entities[1:], slices.Collect(scene.Descendants(nodes, root)))

	name, ok := names.Get(entities[3])
	assert.True(t, ok)
	assert.Equal(t, scene.Name("hand"), name)

	pos, err := scene.WorldPosition(nodes, transforms, entities[3])
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{2, 1, 0}, pos)

	inst, ok := ecs.Get[scene.PrefabInstance](w, entities[2])
	require.True(t, ok)
	assert.Equal(t, p.ID, inst.Prefab)
	rootInst, _ := ecs.Get[scene.PrefabInstance](w, root)
	assert.Equal(t, inst.Instance, rootInst.Instance)
}

func TestPrefabInstancesAreDistinct(t *testing.T) {
	p := scene.NewPrefab("crate")
	p.Add(-1, "crate", scene.NewTransform())

	w := newSceneWorld()
	a, err := p.Instantiate(w)
	require.NoError(t, err)
	b, err := p.Instantiate(w)
	require.NoError(t, err)

	ia, _ := ecs.Get[scene.PrefabInstance](w, a[0])
	ib, _ := ecs.Get[scene.PrefabInstance](w, b[0])
	assert.Equal(t, ia.Prefab, ib.Prefab)
	assert.NotEqual(t, ia.Instance, ib.Instance)
}

func TestPrefabSaveLoad(t *testing.T) {
	p := scene.NewPrefab("tree")
	trunk := p.Add(-1, "trunk", at(0, 0, 0))
	p.Add(trunk, "branch", at(0, 2, 0))
	p.Add(trunk, "leaf", at(0, 3, 0))

	var buf bytes.Buffer
	require.NoError(t, p.Save(&buf))
	assert.Contains(t, buf.String(), p.ID.String())

	loaded, err := scene.LoadPrefab(&buf)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestLoadPrefabDefaultsTransform(t *testing.T) {
	doc := `
id: 6f1c2a1e-3f5b-4c1d-9a3e-2b7d8c9e0f11
name: bare
nodes:
  - name: root
    first_child: 1
  - name: child
    transform:
      position: [1, 0, 0]
`
	p, err := scene.LoadPrefab(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, scene.NewTransform(), p.Nodes[0].Transform)
	assert.Equal(t, float32(1), p.Nodes[1].Transform.Scale)
	assert.Equal(t, "6f1c2a1e-3f5b-4c1d-9a3e-2b7d8c9e0f11", p.ID.String())
}

func TestPrefabValidate(t *testing.T) {
	idx := func(i int) *int { return &i }

	tests := []struct {
		name  string
		nodes []scene.PrefabNode
	}{
		{"empty", nil},
		{"root sibling", []scene.PrefabNode{{NextSibling: idx(1)}, {}}},
		{"out of range", []scene.PrefabNode{{FirstChild: idx(3)}}},
		{"links root", []scene.PrefabNode{{FirstChild: idx(1)}, {FirstChild: idx(0)}}},
		{"shared child", []scene.PrefabNode{{FirstChild: idx(1)}, {NextSibling: idx(2)}, {}, {FirstChild: idx(2)}}},
		{"detached cycle", []scene.PrefabNode{{}, {FirstChild: idx(2)}, {FirstChild: idx(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scene.Prefab{Nodes: tt.nodes}
			err := p.Validate()
			assert.True(t, errors.Is(err, scene.ErrInvalidPrefab), "got %v", err)

			_, err = p.Instantiate(newSceneWorld())
			assert.Error(t, err)
		})
	}
}

func TestCapturePrefab(t *testing.T) {
	w := newSceneWorld()
	root := ecs.With(ecs.With(w.Build(), at(1, 0, 0)), scene.Name("root")).Finish()
	a := ecs.With(ecs.With(w.Build(), at(0, 1, 0)), scene.Name("a")).Finish()
	b := ecs.With(w.Build(), at(0, 0, 1)).Finish()

	nodes := ecs.Write[scene.Node](w)
	require.NoError(t, scene.SetParent(nodes, b, root))
	require.NoError(t, scene.SetParent(nodes, a, root))
	nodes.Release()

	reader := ecs.Read[scene.Node](w)
	transforms := ecs.Read[scene.Transform](w)
	names := ecs.Read[scene.Name](w)
	p := scene.CapturePrefab("copy", reader, transforms, names, root)
	ecs.ReleaseAll(reader, transforms, names)

	require.NoError(t, p.Validate())
	require.Len(t, p.Nodes, 3)
	assert.Equal(t, "root", p.Nodes[0].Name)
	assert.Equal(t, "a", p.Nodes[1].Name)
	assert.Equal(t, "", p.Nodes[2].Name)

	entities, err := p.Instantiate(w)
	require.NoError(t, err)

	nodesAfter := ecs.Read[scene.Node](w)
	defer nodesAfter.Release()
	assert.Equal(t, []ecs.Entity{entities[1], entities[2]}, slices.Collect(scene.Children(nodesAfter, entities[0])))
}
