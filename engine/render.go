package engine

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/basis/ecs"
)

// Screen is the render target resource. The driver replaces the image every
// frame before the render pass runs.
type Screen struct {
	*ebiten.Image

	// Width and Height are used when no image is set yet.
	Width, Height int
}

// Size returns the render target size in pixels.
func (s *Screen) Size() (int, int) {
	if s.Image != nil {
		b := s.Image.Bounds()
		return b.Dx(), b.Dy()
	}
	return s.Width, s.Height
}

type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Drawable gives an entity a flat colored shape. Width and Height are in
// world units before the transform's scale is applied.
type Drawable struct {
	Width, Height float64
	Color         color.RGBA
	Shape         Shape
	// Layer orders drawing; higher layers are drawn on top.
	Layer int
}

// DrawItem is one projected drawable in screen space.
type DrawItem struct {
	Entity  ecs.Entity
	X, Y    float32
	W, H    float32
	Heading float64
	Color   color.RGBA
	Shape   Shape
	Layer   int
}

// Project places a drawable on screen. X and Y are the top-left corner.
func Project(view ebiten.GeoM, zoom float64, t *Transform, d *Drawable) DrawItem {
	cx, cy := view.Apply(t.Position.X, t.Position.Y)
	w := d.Width * t.Scale.X * zoom
	h := d.Height * t.Scale.Y * zoom

	return DrawItem{
		X:       float32(cx - w/2),
		Y:       float32(cy - h/2),
		W:       float32(w),
		H:       float32(h),
		Heading: t.Rotation,
		Color:   d.Color,
		Shape:   d.Shape,
		Layer:   d.Layer,
	}
}

// Visible reports whether the item overlaps a screen of the given size.
func (it DrawItem) Visible(screenW, screenH int) bool {
	return it.X+it.W >= 0 && it.Y+it.H >= 0 &&
		it.X <= float32(screenW) && it.Y <= float32(screenH)
}

// CollectDrawItems projects every live entity that has both a Transform and
// a Drawable through the active camera, sorted by layer. Entities off screen
// are skipped.
func CollectDrawItems(world *ecs.World, screenW, screenH int) []DrawItem {
	view := ebiten.GeoM{}
	zoom := 1.0
	if camera := ActiveCamera(world); camera != nil {
		view = camera.ViewMatrix(screenW, screenH)
		zoom = camera.zoom()
	}

	var items []DrawItem
	for e := range world.ActiveEntities() {
		ecs.WithComponents2(world, e, func(t *Transform, d *Drawable) {
			if t == nil || d == nil {
				return
			}
			item := Project(view, zoom, t, d)
			if !item.Visible(screenW, screenH) {
				return
			}
			item.Entity = e
			items = append(items, item)
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Layer < items[j].Layer
	})
	return items
}

// RenderSystem draws every Transform and Drawable pair onto the Screen. It
// is meant to be set as the scheduler's render pass.
type RenderSystem struct {
	Screen ecs.ResourceRef[Screen]

	Background color.RGBA
	ShowStats  bool
}

func (s *RenderSystem) Run(world *ecs.World, resources *ecs.Resources) {
	screen := s.Screen.Get()
	if screen.Image == nil {
		return
	}
	screen.Fill(s.Background)

	w, h := screen.Size()
	for _, item := range CollectDrawItems(world, w, h) {
		drawItem(screen.Image, item)
	}

	if s.ShowStats {
		ebitenutil.DebugPrintAt(screen.Image,
			fmt.Sprintf("TPS %.0f  FPS %.0f  entities %d",
				ebiten.ActualTPS(), ebiten.ActualFPS(), world.Entities().Len()),
			4, 4)
	}
}

func drawItem(dst *ebiten.Image, it DrawItem) {
	switch it.Shape {
	case ShapeCircle:
		r := min(it.W, it.H) / 2
		vector.DrawFilledCircle(dst, it.X+it.W/2, it.Y+it.H/2, r, it.Color, true)
	default:
		vector.DrawFilledRect(dst, it.X, it.Y, it.W, it.H, it.Color, false)
	}

	if it.Heading != 0 {
		cx, cy := it.X+it.W/2, it.Y+it.H/2
		length := float64(max(it.W, it.H)) / 2
		sin, cos := math.Sincos(it.Heading)
		vector.StrokeLine(dst, cx, cy,
			cx+float32(cos*length), cy+float32(sin*length),
			1, color.RGBA{0, 0, 0, 255}, true)
	}
}
