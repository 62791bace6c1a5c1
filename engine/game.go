// Package engine runs an ecs.World inside an Ebiten window. It provides the
// resources and systems a small 2D game needs: input sampling, a camera, a
// keyboard controller and a flat-shape render pass, plus an optional Dear
// ImGui overlay.
package engine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/basis/ecs"
	"github.com/plus3/basis/ecs/debugui"
	debugui_ebiten "github.com/plus3/basis/ecs/debugui/ebiten"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Game implements ebiten.Game by stepping a Scheduler once per tick and
// running its render pass once per frame.
type Game struct {
	cfg       Config
	world     *ecs.World
	resources *ecs.Resources
	scheduler *ecs.Scheduler
	logger    zerolog.Logger
	overlay   *debugui_ebiten.ImguiBackend
	source    InputSource

	input   ecs.ResourceRef[Input]
	screen  ecs.ResourceRef[Screen]
	started bool
}

type GameOption func(*Game)

// WithLogger sets the logger handed to the scheduler and its systems.
func WithLogger(logger zerolog.Logger) GameOption {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithOverlay draws a Dear ImGui overlay on top of the game and registers
// the systems that feed it.
func WithOverlay(overlay *debugui_ebiten.ImguiBackend) GameOption {
	return func(g *Game) {
		g.overlay = overlay
	}
}

// WithInputSource replaces the Ebiten input source, mainly for tests.
func WithInputSource(src InputSource) GameOption {
	return func(g *Game) {
		g.source = src
	}
}

// NewGame adds the Input and Screen resources and registers the InputSystem
// ahead of any other system.
func NewGame(cfg Config, world *ecs.World, resources *ecs.Resources, opts ...GameOption) *Game {
	g := &Game{
		cfg:       cfg,
		world:     world,
		resources: resources,
		logger:    zerolog.Nop(),
		source:    EbitenSource,
	}
	for _, opt := range opts {
		opt(g)
	}

	ecs.AddResource(resources, NewInput())
	ecs.AddResource(resources, Screen{Width: cfg.Width, Height: cfg.Height})
	g.input.Init(resources)
	g.screen.Init(resources)

	g.scheduler = ecs.NewScheduler(world, resources, ecs.WithSchedulerLogger(g.logger))
	g.scheduler.Register(&InputSystem{Source: g.source})

	if g.overlay != nil {
		debugui.SpawnDebugUI(world)
		g.scheduler.Register(
			&debugui.ImguiSystem{},
			&debugui.InspectorSystem{Scheduler: g.scheduler},
		)
	}
	return g
}

func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}

func (g *Game) World() *ecs.World {
	return g.world
}

func (g *Game) Resources() *ecs.Resources {
	return g.resources
}

// Register adds game systems after the built-in ones.
func (g *Game) Register(systems ...ecs.System) {
	g.scheduler.Register(systems...)
}

func (g *Game) SetRenderPass(system ecs.System) {
	g.scheduler.SetRenderPass(system)
}

// start runs the Setup systems once.
func (g *Game) start() error {
	if g.started {
		return nil
	}
	g.started = true

	if err := g.scheduler.Setup(); err != nil {
		return err
	}
	ecs.LogSystems(g.logger, g.scheduler, zerolog.InfoLevel)
	ecs.LogWorld(g.logger, g.world, zerolog.DebugLevel)
	return nil
}

// Update advances the simulation by one fixed tick, running the Setup
// systems first if they have not run. Escape ends the game.
func (g *Game) Update() error {
	if err := g.start(); err != nil {
		return err
	}

	step := func() {
		g.scheduler.Update(g.cfg.TickDelta())
	}
	if g.overlay != nil {
		g.overlay.Frame(step)
	} else {
		step()
	}

	if g.input.Get().Pressed(ebiten.KeyEscape) {
		g.logger.Info().Uint64("frames", g.scheduler.Stats().Frames).Msg("escape pressed, stopping")
		return ebiten.Termination
	}
	return nil
}

// Draw points the Screen resource at the frame's image and runs the render
// pass.
func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.scheduler.Render()
	g.screen.Get().Image = nil

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}

	screen := g.screen.Get()
	screen.Width, screen.Height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window, runs the Setup systems and blocks until the window
// closes or Escape is pressed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.TPS)

	if err := g.start(); err != nil {
		return err
	}

	if err := ebiten.RunGame(g); err != nil {
		return eris.Wrap(err, "game loop")
	}
	return nil
}
