// Package physics wraps the Box2D rigid-body world used for scenario
// geometry: static containers, motorized bodies and joints.
package physics

import (
	"math"

	"github.com/ByteArena/box2d"
	"go.uber.org/zap"
)

// Box is a box fixture recorded for debug drawing.
type Box struct {
	Body       *box2d.B2Body
	Center     box2d.B2Vec2 // in body coordinates
	HalfWidth  float64
	HalfHeight float64
}

// Corners returns the box corners in world coordinates, counter-clockwise.
func (b Box) Corners() [4]box2d.B2Vec2 {
	pos := b.Body.GetPosition()
	angle := b.Body.GetAngle()
	c, s := math.Cos(angle), math.Sin(angle)
	local := [4]box2d.B2Vec2{
		box2d.MakeB2Vec2(b.Center.X-b.HalfWidth, b.Center.Y-b.HalfHeight),
		box2d.MakeB2Vec2(b.Center.X+b.HalfWidth, b.Center.Y-b.HalfHeight),
		box2d.MakeB2Vec2(b.Center.X+b.HalfWidth, b.Center.Y+b.HalfHeight),
		box2d.MakeB2Vec2(b.Center.X-b.HalfWidth, b.Center.Y+b.HalfHeight),
	}
	var out [4]box2d.B2Vec2
	for i, p := range local {
		out[i] = box2d.MakeB2Vec2(pos.X+c*p.X-s*p.Y, pos.Y+s*p.X+c*p.Y)
	}
	return out
}

// World owns the Box2D world of one scenario.
type World struct {
	b2     *box2d.B2World
	logger *zap.Logger
	boxes  []Box
}

// NewWorld creates a world with the given gravity.
func NewWorld(gravity box2d.B2Vec2, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := box2d.MakeB2World(gravity)
	return &World{
		b2:     &w,
		logger: logger.Named("world"),
	}
}

// B2 exposes the underlying Box2D world.
func (w *World) B2() *box2d.B2World {
	return w.b2
}

// StaticBody creates a static body at the origin.
func (w *World) StaticBody() *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	return w.b2.CreateBody(&bd)
}

// DynamicBody creates a dynamic body at pos.
func (w *World) DynamicBody(pos box2d.B2Vec2, allowSleep bool) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.AllowSleep = allowSleep
	bd.Position = pos
	return w.b2.CreateBody(&bd)
}

// AddBox attaches a box fixture centered at center (body coordinates).
func (w *World) AddBox(body *box2d.B2Body, hx, hy float64, center box2d.B2Vec2, density float64) *box2d.B2Fixture {
	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBoxFromCenterAndAngle(hx, hy, center, 0)
	fixture := body.CreateFixture(&shape, density)
	w.boxes = append(w.boxes, Box{Body: body, Center: center, HalfWidth: hx, HalfHeight: hy})
	return fixture
}

// Boxes returns every box fixture added through AddBox.
func (w *World) Boxes() []Box {
	return w.boxes
}

// Step advances the rigid bodies. A non-positive dt is ignored.
func (w *World) Step(dt float64, velocityIterations, positionIterations int) {
	if dt <= 0 {
		return
	}
	w.b2.Step(dt, velocityIterations, positionIterations)
}

// Contains reports whether p lies inside any fixture of the world.
func (w *World) Contains(p box2d.B2Vec2) bool {
	for body := w.b2.GetBodyList(); body != nil; body = body.GetNext() {
		for f := body.GetFixtureList(); f != nil; f = f.GetNext() {
			if f.TestPoint(p) {
				return true
			}
		}
	}
	return false
}

// Close drops every body so the world can be garbage collected.
func (w *World) Close() {
	for body := w.b2.GetBodyList(); body != nil; {
		next := body.GetNext()
		w.b2.DestroyBody(body)
		body = next
	}
	w.boxes = nil
	w.logger.Debug("world closed")
}
