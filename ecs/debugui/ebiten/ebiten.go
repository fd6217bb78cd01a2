// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/render2d"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. ImGui layout
// persistence is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Game implements ebiten.Game: each tick runs the scheduler inside an ImGui
// frame, and each draw renders the world's sprites under the ImGui overlay.
type Game struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Renderer  *render2d.Renderer
	Backend   *ImguiBackend
}

// NewGame wires a world and scheduler to a renderer and the ImGui backend.
// The backend is also stored as a world singleton.
func NewGame(world *ecs.World, scheduler *ecs.Scheduler, backend *ImguiBackend) *Game {
	world.AddSingleton(*backend)
	return &Game{
		World:     world,
		Scheduler: scheduler,
		Renderer:  render2d.NewRenderer(),
		Backend:   backend,
	}
}

func (g *Game) Update() error {
	g.Backend.BeginFrame()
	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	g.Backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.Renderer != nil {
		g.Renderer.Draw(screen, g.World)
	}
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
