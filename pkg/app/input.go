package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointer is the mouse or first touch of the current frame.
type pointer struct {
	// Pressed is true while the button or finger is down.
	Pressed     bool
	// JustPressed is true on the first frame of a press.
	JustPressed bool
	X, Y        int
}

// readPointer prefers touch input and falls back to the left mouse button.
func readPointer() pointer {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return pointer{Pressed: true, JustPressed: true, X: x, Y: y}
	}
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return pointer{Pressed: true, X: x, Y: y}
	}

	x, y := ebiten.CursorPosition()
	return pointer{
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
	}
}

// drag pans the camera so the world point under the pointer follows it.
type drag struct {
	active bool
	lastX  int
	lastY  int
}

// update applies p to cam and reports whether the camera moved.
func (d *drag) update(cam *Camera, p pointer) bool {
	if !p.Pressed {
		d.active = false
		return false
	}
	if p.JustPressed || !d.active {
		d.active = true
		d.lastX, d.lastY = p.X, p.Y
		return false
	}
	if p.X == d.lastX && p.Y == d.lastY {
		return false
	}
	from := cam.ScreenToWorld(float32(d.lastX), float32(d.lastY))
	to := cam.ScreenToWorld(float32(p.X), float32(p.Y))
	cam.Center.X -= to.X - from.X
	cam.Center.Y -= to.Y - from.Y
	d.lastX, d.lastY = p.X, p.Y
	return true
}

// wheelZoom returns the zoom factor for a vertical wheel offset.
func wheelZoom(dy float64) float64 {
	switch {
	case dy > 0:
		return 1 / 1.1
	case dy < 0:
		return 1.1
	}
	return 1
}
