package engine_test

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/basis/ecs"
	"github.com/plus3/basis/ecs/debugui"
	"github.com/plus3/basis/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraViewMatrix(t *testing.T) {
	camera := engine.NewCamera(engine.Vec2{X: 100, Y: 50}, 0)
	camera.Zoom = 2

	m := camera.ViewMatrix(200, 100)
	x, y := m.Apply(100, 50)
	assert.InDelta(t, 100, x, 1e-9, "camera position is the screen center")
	assert.InDelta(t, 50, y, 1e-9)

	x, y = m.Apply(110, 50)
	assert.InDelta(t, 120, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	w := camera.ScreenToWorld(120, 50, 200, 100)
	assert.InDelta(t, 110, w.X, 1e-9)
	assert.InDelta(t, 50, w.Y, 1e-9)
}

func TestCameraZeroZoom(t *testing.T) {
	camera := engine.Camera{}
	m := camera.ViewMatrix(100, 100)
	x, y := m.Apply(0, 0)
	assert.InDelta(t, 50, x, 1e-9, "zero zoom acts as 1")
	assert.InDelta(t, 50, y, 1e-9)
}

func TestCameraPanAndZoom(t *testing.T) {
	camera := engine.NewCamera(engine.Vec2{}, 0)

	camera.Zoom = 2
	camera.Pan(10, -4)
	assert.Equal(t, engine.Vec2{X: 5, Y: -2}, camera.Position, "pan is in screen pixels")

	t.Run("keeps the point under the cursor", func(t *testing.T) {
		camera := engine.NewCamera(engine.Vec2{}, 0)
		camera.ZoomAt(2, 0, 0, 200, 100)

		assert.Equal(t, 2.0, camera.Zoom)
		assert.InDelta(t, -50, camera.Position.X, 1e-9)
		assert.InDelta(t, -25, camera.Position.Y, 1e-9)

		w := camera.ScreenToWorld(0, 0, 200, 100)
		assert.InDelta(t, -100, w.X, 1e-9)
		assert.InDelta(t, -50, w.Y, 1e-9)
	})

	t.Run("clamped", func(t *testing.T) {
		camera := engine.NewCamera(engine.Vec2{}, 0)
		camera.ZoomAt(100, 100, 50, 200, 100)
		assert.Equal(t, engine.MaxZoom, camera.Zoom)

		camera.ZoomAt(0.001, 100, 50, 200, 100)
		assert.Equal(t, engine.MinZoom, camera.Zoom)
	})
}

func TestActiveCamera(t *testing.T) {
	world := ecs.NewWorld()
	assert.Nil(t, engine.ActiveCamera(world))

	inactive := engine.NewCamera(engine.Vec2{X: 1}, 0)
	inactive.Active = false
	ecs.AddComponent(world, inactive)
	assert.Nil(t, engine.ActiveCamera(world))

	ecs.AddComponent(world, engine.NewCamera(engine.Vec2{X: 2}, 0))
	ecs.AddComponent(world, engine.NewCamera(engine.Vec2{X: 3}, 0))

	active := engine.ActiveCamera(world)
	require.NotNil(t, active)
	assert.Equal(t, 2.0, active.Position.X, "lowest entity id wins")
}

type cameraHarness struct {
	world     *ecs.World
	resources *ecs.Resources
	scheduler *ecs.Scheduler
	src       *fakeSource
	camera    ecs.Entity
}

func newCameraHarness() *cameraHarness {
	h := &cameraHarness{
		world:     ecs.NewWorld(),
		resources: ecs.NewResources(),
		src:       newFakeSource(),
	}
	ecs.AddResource(h.resources, engine.NewInput())
	ecs.AddResource(h.resources, engine.Screen{Width: 200, Height: 100})

	h.camera = h.world.Spawn()
	ecs.AddEntityComponent(h.world, h.camera, engine.NewCamera(engine.Vec2{}, 100))

	h.scheduler = ecs.NewScheduler(h.world, h.resources)
	h.scheduler.Register(&engine.InputSystem{Source: h.src}, &engine.CameraSystem{})
	return h
}

func (h *cameraHarness) cam() engine.Camera {
	c, _ := ecs.GetComponent[engine.Camera](h.world, h.camera)
	return c
}

func TestCameraSystem(t *testing.T) {
	t.Run("keyboard pan", func(t *testing.T) {
		h := newCameraHarness()
		h.src.keys[ebiten.KeyD] = true
		h.src.keys[ebiten.KeyW] = true
		h.scheduler.Update(0.5)

		assert.Equal(t, engine.Vec2{X: 50, Y: -50}, h.cam().Position)
	})

	t.Run("right drag", func(t *testing.T) {
		h := newCameraHarness()
		h.src.buttons[ebiten.MouseButtonRight] = true
		h.src.x, h.src.y = 100, 50
		h.scheduler.Update(0.1)
		assert.Equal(t, engine.Vec2{}, h.cam().Position)

		h.src.x, h.src.y = 90, 45
		h.scheduler.Update(0.1)
		assert.Equal(t, engine.Vec2{X: 10, Y: 5}, h.cam().Position)

		h.src.buttons[ebiten.MouseButtonRight] = false
		h.src.x = 0
		h.scheduler.Update(0.1)
		assert.Equal(t, engine.Vec2{X: 10, Y: 5}, h.cam().Position, "drag ends on release")
	})

	t.Run("wheel zoom", func(t *testing.T) {
		h := newCameraHarness()
		h.src.x, h.src.y = 100, 50
		h.src.wheelY = 1
		h.scheduler.Update(0.1)

		assert.InDelta(t, 1.1, h.cam().Zoom, 1e-9)
		assert.InDelta(t, 0, h.cam().Position.X, 1e-9)
	})

	t.Run("overlay capture", func(t *testing.T) {
		h := newCameraHarness()
		ecs.AddResource(h.resources, debugui.ImguiInputState{WantCaptureMouse: true, WantCaptureKeyboard: true})

		h.src.keys[ebiten.KeyD] = true
		h.src.wheelY = 1
		h.scheduler.Update(0.5)

		assert.Equal(t, engine.Vec2{}, h.cam().Position)
		assert.Equal(t, 1.0, h.cam().Zoom)
	})

	t.Run("no camera", func(t *testing.T) {
		h := newCameraHarness()
		h.world.Despawn(h.camera)
		assert.NotPanics(t, func() { h.scheduler.Update(0.1) })
	})
}
