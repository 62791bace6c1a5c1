package engine

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/basis/ecs"
	"github.com/plus3/basis/ecs/debugui"
)

const (
	MinZoom = 0.25
	MaxZoom = 8.0
)

// Camera is a 2D view onto the world. Position is the world point shown at
// the center of the screen.
type Camera struct {
	Position Vec2
	Zoom     float64
	// Speed is the pan speed in screen pixels per second.
	Speed float64
	// Active selects the camera used by the render pass. When several are
	// active the one with the lowest entity id wins.
	Active bool
}

// NewCamera returns an active camera centered on pos at zoom 1.
func NewCamera(pos Vec2, speed float64) Camera {
	return Camera{Position: pos, Zoom: 1, Speed: speed, Active: true}
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// ViewMatrix maps world coordinates to screen coordinates for a screen of
// the given size.
func (c *Camera) ViewMatrix(screenW, screenH int) ebiten.GeoM {
	z := c.zoom()

	var m ebiten.GeoM
	m.Translate(-c.Position.X, -c.Position.Y)
	m.Scale(z, z)
	m.Translate(float64(screenW)/2, float64(screenH)/2)
	return m
}

// ScreenToWorld converts a screen pixel to world coordinates.
func (c *Camera) ScreenToWorld(x, y, screenW, screenH int) Vec2 {
	m := c.ViewMatrix(screenW, screenH)
	m.Invert()
	wx, wy := m.Apply(float64(x), float64(y))
	return Vec2{wx, wy}
}

// Pan moves the camera by a screen-space offset.
func (c *Camera) Pan(dx, dy float64) {
	z := c.zoom()
	c.Position.X += dx / z
	c.Position.Y += dy / z
}

// ZoomAt multiplies the zoom by factor, keeping the world point under the
// screen pixel (x, y) fixed.
func (c *Camera) ZoomAt(factor float64, x, y, screenW, screenH int) {
	before := c.ScreenToWorld(x, y, screenW, screenH)
	c.Zoom = math.Max(MinZoom, math.Min(MaxZoom, c.zoom()*factor))
	after := c.ScreenToWorld(x, y, screenW, screenH)
	c.Position = c.Position.Add(before.Sub(after))
}

// ActiveCamera returns the camera the render pass uses, or nil.
func ActiveCamera(world *ecs.World) *Camera {
	var active *Camera
	ecs.Each1(world, func(e ecs.Entity, c *Camera) {
		if active == nil && c.Active {
			active = c
		}
	})
	return active
}

// CameraSystem pans the active camera with WASD or a right-button drag and
// zooms it with the wheel. Input captured by the debug overlay is ignored.
type CameraSystem struct {
	Input   ecs.ResourceRef[Input]
	Time    ecs.ResourceRef[ecs.Time]
	Screen  ecs.ResourceRef[Screen]
	Overlay ecs.ResourceRef[debugui.ImguiInputState]

	dragging     bool
	lastX, lastY int
}

func (s *CameraSystem) Run(world *ecs.World, resources *ecs.Resources) {
	camera := ActiveCamera(world)
	if camera == nil {
		return
	}

	input := s.Input.Get()
	dt := s.Time.Get().Delta
	w, h := s.Screen.Get().Size()

	var captureMouse, captureKeyboard bool
	if s.Overlay.Exists() {
		captureMouse = s.Overlay.Get().WantCaptureMouse
		captureKeyboard = s.Overlay.Get().WantCaptureKeyboard
	}

	if !captureKeyboard {
		step := camera.Speed * dt
		if input.Hold(ebiten.KeyA) {
			camera.Pan(-step, 0)
		}
		if input.Hold(ebiten.KeyD) {
			camera.Pan(step, 0)
		}
		if input.Hold(ebiten.KeyW) {
			camera.Pan(0, -step)
		}
		if input.Hold(ebiten.KeyS) {
			camera.Pan(0, step)
		}
	}

	if captureMouse {
		s.dragging = false
		return
	}

	mx, my := input.Cursor()
	if input.MousePressed(ebiten.MouseButtonRight) {
		s.dragging = true
		s.lastX, s.lastY = mx, my
	}
	if !input.MouseHold(ebiten.MouseButtonRight) {
		s.dragging = false
	}
	if s.dragging {
		camera.Pan(float64(s.lastX-mx), float64(s.lastY-my))
		s.lastX, s.lastY = mx, my
	}

	if _, dy := input.Wheel(); dy != 0 {
		camera.ZoomAt(math.Pow(1.1, dy), mx, my, w, h)
	}
}
