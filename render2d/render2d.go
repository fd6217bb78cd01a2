// Package render2d draws Sprite components with ebiten, placing each one at
// the world transform of its entity.
package render2d

import (
	"cmp"
	"image"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/scene"
	"github.com/plus3/grove/scene/twod"
)

// Sprite is an image drawn at the world transform of its entity.
type Sprite struct {
	Image *ebiten.Image
	// Source selects a region of Image. The empty rectangle draws all of it.
	Source image.Rectangle
	// Pivot is the pixel of the image placed at the entity origin.
	Pivot mgl32.Vec2
	// Layer orders drawing; lower layers are drawn first.
	Layer  int
	Hidden bool
}

// Register registers Sprite along with the node and 2-D transform types.
func Register(w *ecs.World) {
	twod.Register(w)
	ecs.RegisterComponent[Sprite](w)
}

// GeoM converts a 2-D transform into an ebiten geometry matrix.
func GeoM(t twod.Transform) ebiten.GeoM {
	var g ebiten.GeoM
	m := t.Linear
	g.SetElement(0, 0, float64(m.At(0, 0)))
	g.SetElement(0, 1, float64(m.At(0, 1)))
	g.SetElement(1, 0, float64(m.At(1, 0)))
	g.SetElement(1, 1, float64(m.At(1, 1)))
	g.SetElement(0, 2, float64(t.Offset.X()))
	g.SetElement(1, 2, float64(t.Offset.Y()))
	return g
}

// DrawCommand is one resolved sprite draw.
type DrawCommand struct {
	Entity ecs.Entity
	Sprite Sprite
	GeoM   ebiten.GeoM
}

// Renderer draws every visible sprite of a world.
type Renderer struct {
	// Camera maps world space to screen space.
	Camera twod.Transform

	commands []DrawCommand
}

// NewRenderer returns a renderer with an identity camera.
func NewRenderer() *Renderer {
	return &Renderer{Camera: twod.Identity()}
}

// Commands resolves the visible sprites of w in draw order. Sprites on
// entities without a 2-D transform are skipped. The returned slice is reused
// by the next call.
func (r *Renderer) Commands(w *ecs.World) []DrawCommand {
	view, sprites, transforms := ecs.ViewR2[Sprite, twod.Transform](w)
	nodes := ecs.Read[scene.Node](w)
	defer ecs.ReleaseAll(sprites, transforms, nodes)

	worlds := twod.WorldTransforms(w.Entities(), nodes, transforms)

	r.commands = r.commands[:0]
	for e := range view.Iter() {
		sprite := sprites.GetUnchecked(e)
		if sprite.Hidden {
			continue
		}
		world, ok := worlds[e]
		if !ok {
			continue
		}
		pivot := twod.Translation(-sprite.Pivot.X(), -sprite.Pivot.Y())
		r.commands = append(r.commands, DrawCommand{
			Entity: e,
			Sprite: sprite,
			GeoM:   GeoM(r.Camera.Mul(world).Mul(pivot)),
		})
	}

	slices.SortStableFunc(r.commands, func(a, b DrawCommand) int {
		return cmp.Compare(a.Sprite.Layer, b.Sprite.Layer)
	})
	return r.commands
}

// Draw renders the sprites of w onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World) {
	for _, cmd := range r.Commands(w) {
		img := cmd.Sprite.Image
		if img == nil {
			continue
		}
		if !cmd.Sprite.Source.Empty() {
			img = img.SubImage(cmd.Sprite.Source).(*ebiten.Image)
		}
		op := &ebiten.DrawImageOptions{GeoM: cmd.GeoM}
		screen.DrawImage(img, op)
	}
}
