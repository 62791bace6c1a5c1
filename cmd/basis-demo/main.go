// Command basis-demo opens a window with a few hundred wandering shapes, a
// player square steered with the arrow keys and a pannable camera. Set
// BASIS_DEBUG=true for the entity inspector overlay.
package main

import (
	"image/color"
	"math"
	"math/rand/v2"
	"os"

	"github.com/plus3/basis/ecs"
	debugui_ebiten "github.com/plus3/basis/ecs/debugui/ebiten"
	"github.com/plus3/basis/engine"
	"github.com/rs/zerolog"
)

var pastelColors = []color.RGBA{
	{255, 179, 186, 255},
	{179, 229, 252, 255},
	{255, 223, 186, 255},
	{186, 255, 201, 255},
	{255, 200, 221, 255},
	{217, 186, 255, 255},
}

// Wander drifts an entity in a slowly turning direction.
type Wander struct {
	Speed float64
	Turn  float64
}

type WanderSystem struct {
	Time ecs.ResourceRef[ecs.Time]
}

func (s *WanderSystem) Run(world *ecs.World, resources *ecs.Resources) {
	dt := s.Time.Get().Delta
	ecs.Each2(world, func(e ecs.Entity, t *engine.Transform, w *Wander) {
		t.Rotation += w.Turn * dt
		step := engine.Vec2{X: math.Cos(t.Rotation), Y: math.Sin(t.Rotation)}.Scale(w.Speed * dt)
		t.Position = t.Position.Add(step)
	})
}

// spawnScene runs once before the first frame.
func spawnScene(count int, seed uint64) ecs.System {
	return ecs.NewSystem("spawnScene", ecs.Setup, func(world *ecs.World, resources *ecs.Resources) {
		r := rand.New(rand.NewPCG(seed, seed))

		ecs.AddComponent(world, engine.NewCamera(engine.Vec2{}, 400))

		player := world.Spawn()
		ecs.AddEntityComponent(world, player, engine.NewTransform(0, 0))
		ecs.AddEntityComponent(world, player, engine.Controller{Speed: 200, TurnRate: math.Pi})
		ecs.AddEntityComponent(world, player, engine.Drawable{
			Width: 24, Height: 24, Color: color.RGBA{255, 255, 255, 255}, Layer: 1,
		})

		for range count {
			e := world.Spawn()
			t := engine.NewTransform(r.Float64()*1600-800, r.Float64()*1000-500)
			t.Rotation = r.Float64() * 2 * math.Pi
			ecs.AddEntityComponent(world, e, t)
			ecs.AddEntityComponent(world, e, Wander{Speed: 20 + r.Float64()*40, Turn: r.NormFloat64()})

			shape := engine.ShapeRect
			if r.IntN(2) == 0 {
				shape = engine.ShapeCircle
			}
			size := 6 + r.Float64()*10
			ecs.AddEntityComponent(world, e, engine.Drawable{
				Width:  size,
				Height: size,
				Color:  pastelColors[r.IntN(len(pastelColors))],
				Shape:  shape,
			})
		}
	})
}

func main() {
	cfg, err := engine.LoadConfig()
	if err != nil {
		fallback := engine.NewLogger(engine.DefaultConfig(), os.Stderr)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := engine.NewLogger(cfg, os.Stderr)

	world := ecs.NewWorld(ecs.WithWorldLogger(logger))
	resources := ecs.NewResources(ecs.WithResourcesLogger(logger))

	opts := []engine.GameOption{engine.WithLogger(logger)}
	if cfg.Debug {
		opts = append(opts, engine.WithOverlay(debugui_ebiten.NewImguiBackend(cfg.Title, cfg.Width, cfg.Height)))
	}

	game := engine.NewGame(cfg, world, resources, opts...)
	game.Register(
		spawnScene(300, 42),
		&engine.ControllerSystem{},
		&engine.CameraSystem{},
		&WanderSystem{},
	)
	game.SetRenderPass(&engine.RenderSystem{
		Background: color.RGBA{30, 30, 40, 255},
		ShowStats:  true,
	})

	ecs.LogResources(logger, resources, zerolog.DebugLevel)

	if err := game.Run(); err != nil {
		logger.Fatal().Err(err).Msg("game exited")
	}
	logger.Info().Msg("bye")
}
