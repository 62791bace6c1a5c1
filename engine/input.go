package engine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/basis/ecs"
)

// InputSource is the device state the Input resource samples once per frame.
type InputSource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	CursorPosition() (int, int)
	Wheel() (float64, float64)
}

type ebitenSource struct{}

func (ebitenSource) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (ebitenSource) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

func (ebitenSource) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenSource) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

// EbitenSource reads input from the running ebiten window.
var EbitenSource InputSource = ebitenSource{}

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// Input is the per-frame input snapshot resource. Hold reports keys that are
// down; Pressed and Released report transitions since the previous frame.
type Input struct {
	keys     []bool
	prevKeys []bool

	buttons     map[ebiten.MouseButton]bool
	prevButtons map[ebiten.MouseButton]bool

	cursorX, cursorY int
	wheelX, wheelY   float64
}

// NewInput creates an Input with nothing held.
func NewInput() Input {
	return Input{
		keys:        make([]bool, int(ebiten.KeyMax)+1),
		prevKeys:    make([]bool, int(ebiten.KeyMax)+1),
		buttons:     make(map[ebiten.MouseButton]bool, len(mouseButtons)),
		prevButtons: make(map[ebiten.MouseButton]bool, len(mouseButtons)),
	}
}

// Update samples the source and shifts the current state to the previous
// frame.
func (in *Input) Update(src InputSource) {
	if in.keys == nil {
		*in = NewInput()
	}

	in.keys, in.prevKeys = in.prevKeys, in.keys
	for k := range in.keys {
		in.keys[k] = src.IsKeyPressed(ebiten.Key(k))
	}

	for _, b := range mouseButtons {
		in.prevButtons[b] = in.buttons[b]
		in.buttons[b] = src.IsMouseButtonPressed(b)
	}

	in.cursorX, in.cursorY = src.CursorPosition()
	in.wheelX, in.wheelY = src.Wheel()
}

func (in *Input) key(keys []bool, k ebiten.Key) bool {
	return int(k) >= 0 && int(k) < len(keys) && keys[k]
}

// Hold reports whether the key is down this frame.
func (in *Input) Hold(k ebiten.Key) bool {
	return in.key(in.keys, k)
}

// Pressed reports whether the key went down this frame.
func (in *Input) Pressed(k ebiten.Key) bool {
	return in.key(in.keys, k) && !in.key(in.prevKeys, k)
}

// Released reports whether the key went up this frame.
func (in *Input) Released(k ebiten.Key) bool {
	return !in.key(in.keys, k) && in.key(in.prevKeys, k)
}

// MouseHold reports whether the button is down this frame.
func (in *Input) MouseHold(b ebiten.MouseButton) bool {
	return in.buttons[b]
}

// MousePressed reports whether the button went down this frame.
func (in *Input) MousePressed(b ebiten.MouseButton) bool {
	return in.buttons[b] && !in.prevButtons[b]
}

// MouseReleased reports whether the button went up this frame.
func (in *Input) MouseReleased(b ebiten.MouseButton) bool {
	return !in.buttons[b] && in.prevButtons[b]
}

// Cursor returns the cursor position in screen pixels.
func (in *Input) Cursor() (int, int) {
	return in.cursorX, in.cursorY
}

// Wheel returns the wheel offset of this frame.
func (in *Input) Wheel() (float64, float64) {
	return in.wheelX, in.wheelY
}

// InputSystem samples the input source into the Input resource. Register it
// before any system that reads Input.
type InputSystem struct {
	Input  ecs.ResourceRef[Input]
	Source InputSource
}

func (s *InputSystem) Run(world *ecs.World, resources *ecs.Resources) {
	src := s.Source
	if src == nil {
		src = EbitenSource
	}
	s.Input.Get().Update(src)
}
