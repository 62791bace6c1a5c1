package engine

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/basis/ecs"
)

// Vec2 is a point or offset in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2      { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }

// Rotate turns the vector by rad radians.
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Transform places an entity in the world.
type Transform struct {
	Position Vec2
	// Rotation in radians, clockwise on screen.
	Rotation float64
	Scale    Vec2
}

// NewTransform returns a transform at (x, y) with unit scale.
func NewTransform(x, y float64) Transform {
	return Transform{Position: Vec2{x, y}, Scale: Vec2{1, 1}}
}

// Translate moves the transform to pos.
func (t *Transform) Translate(pos Vec2) {
	t.Position = pos
}

// SetScale replaces the scale.
func (t *Transform) SetScale(scale Vec2) {
	t.Scale = scale
}

// Center returns an object-space center point scaled by the transform.
func (t *Transform) Center(objectCenter Vec2) Vec2 {
	return objectCenter.Mul(t.Scale)
}

// GeoM maps object space to world space: scale, then rotate, then translate.
func (t *Transform) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(t.Scale.X, t.Scale.Y)
	m.Rotate(t.Rotation)
	m.Translate(t.Position.X, t.Position.Y)
	return m
}

// Controller marks an entity as steered by the arrow keys. Holding Control
// turns the arrows into rotation.
type Controller struct {
	// Speed in world units per second.
	Speed float64
	// TurnRate in radians per second.
	TurnRate float64
}

// ControllerSystem moves every controlled transform from the Input resource.
type ControllerSystem struct {
	Input ecs.ResourceRef[Input]
	Time  ecs.ResourceRef[ecs.Time]
}

func (s *ControllerSystem) Run(world *ecs.World, resources *ecs.Resources) {
	input := s.Input.Get()
	dt := s.Time.Get().Delta

	var dir Vec2
	if input.Hold(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if input.Hold(ebiten.KeyArrowRight) {
		dir.X++
	}
	if input.Hold(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if input.Hold(ebiten.KeyArrowDown) {
		dir.Y++
	}
	if dir == (Vec2{}) {
		return
	}

	rotating := input.Hold(ebiten.KeyControl)

	ecs.Each2(world, func(e ecs.Entity, t *Transform, c *Controller) {
		if rotating {
			t.Rotation += dir.X * c.TurnRate * dt
			return
		}
		t.Position = t.Position.Add(dir.Scale(c.Speed * dt))
	})
}
