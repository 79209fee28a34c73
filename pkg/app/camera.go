package app

import "github.com/ByteArena/box2d"

// viewExtent is the half height in world units shown at zoom 1.
const viewExtent = 25.0

// Camera maps world coordinates (y up) to screen pixels (y down).
type Camera struct {
	Center box2d.B2Vec2
	Zoom   float64
	Width  int
	Height int
}

// NewCamera returns a camera framing a scenario with the given default zoom.
func NewCamera(zoom float64, width, height int) Camera {
	return Camera{
		Center: box2d.MakeB2Vec2(0, 20*zoom),
		Zoom:   zoom,
		Width:  width,
		Height: height,
	}
}

// Scale returns pixels per world unit.
func (c Camera) Scale() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return float64(c.Height) / (2 * viewExtent * c.Zoom)
}

// WorldToScreen converts a world point to screen pixels.
func (c Camera) WorldToScreen(p box2d.B2Vec2) (float32, float32) {
	s := c.Scale()
	x := float64(c.Width)/2 + (p.X-c.Center.X)*s
	y := float64(c.Height)/2 - (p.Y-c.Center.Y)*s
	return float32(x), float32(y)
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c Camera) ScreenToWorld(x, y float32) box2d.B2Vec2 {
	s := c.Scale()
	return box2d.MakeB2Vec2(
		(float64(x)-float64(c.Width)/2)/s+c.Center.X,
		-(float64(y)-float64(c.Height)/2)/s+c.Center.Y,
	)
}

// ZoomBy multiplies the zoom by f, keeping it positive.
func (c *Camera) ZoomBy(f float64) {
	if f > 0 {
		c.Zoom *= f
	}
}
