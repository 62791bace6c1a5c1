package engine_test

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// fakeSource is an InputSource driven by the test.
type fakeSource struct {
	keys    map[ebiten.Key]bool
	buttons map[ebiten.MouseButton]bool
	x, y    int
	wheelY  float64
	samples int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		keys:    map[ebiten.Key]bool{},
		buttons: map[ebiten.MouseButton]bool{},
	}
}

func (f *fakeSource) IsKeyPressed(key ebiten.Key) bool {
	if key == 0 {
		f.samples++
	}
	return f.keys[key]
}

func (f *fakeSource) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return f.buttons[button]
}

func (f *fakeSource) CursorPosition() (int, int) {
	return f.x, f.y
}

func (f *fakeSource) Wheel() (float64, float64) {
	return 0, f.wheelY
}
