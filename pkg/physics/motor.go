package physics

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
	"go.uber.org/zap"
)

// MotorJoint is a joint whose motor speed can be driven every tick.
type MotorJoint interface {
	SetMotorSpeed(speed float64)
	GetMotorSpeed() float64
}

// RevoluteMotorDef describes a motorized revolute joint between two bodies.
type RevoluteMotorDef struct {
	BodyA          *box2d.B2Body
	BodyB          *box2d.B2Body
	LocalAnchorA   box2d.B2Vec2
	LocalAnchorB   box2d.B2Vec2
	ReferenceAngle float64
	MotorSpeed     float64
	MaxMotorTorque float64
}

// RevoluteMotor creates an enabled revolute motor joint.
func (w *World) RevoluteMotor(def RevoluteMotorDef) (*box2d.B2RevoluteJoint, error) {
	jd := box2d.MakeB2RevoluteJointDef()
	jd.BodyA = def.BodyA
	jd.BodyB = def.BodyB
	jd.LocalAnchorA = def.LocalAnchorA
	jd.LocalAnchorB = def.LocalAnchorB
	jd.ReferenceAngle = def.ReferenceAngle
	jd.MotorSpeed = def.MotorSpeed
	jd.MaxMotorTorque = def.MaxMotorTorque
	jd.EnableMotor = true

	joint, ok := w.b2.CreateJoint(&jd).(*box2d.B2RevoluteJoint)
	if !ok {
		return nil, fmt.Errorf("create revolute joint: unexpected joint type")
	}
	w.logger.Debug("created revolute motor",
		zap.Float64("motorSpeed", def.MotorSpeed),
		zap.Float64("maxMotorTorque", def.MaxMotorTorque))
	return joint, nil
}

// Oscillator drives a motor joint with speed = amplitude * cos(phase) * scale.
// Phase only advances on positive time steps, so a paused clock freezes it.
type Oscillator struct {
	joint     MotorJoint
	amplitude float64
	scale     float64
	phase     float64
}

// NewOscillator creates an oscillator with phase 0.
func NewOscillator(joint MotorJoint, amplitude, scale float64) *Oscillator {
	return &Oscillator{
		joint:     joint,
		amplitude: amplitude,
		scale:     scale,
	}
}

// Advance adds dt to the phase when dt > 0 and writes the motor speed.
// The speed is written every call, including paused ones.
func (o *Oscillator) Advance(dt float64) {
	if dt > 0 {
		o.phase += dt
	}
	o.joint.SetMotorSpeed(o.Speed())
}

// Speed returns the motor speed for the current phase.
func (o *Oscillator) Speed() float64 {
	return o.amplitude * math.Cos(o.phase) * o.scale
}

// Phase returns the elapsed phase time in seconds.
func (o *Oscillator) Phase() float64 {
	return o.phase
}
