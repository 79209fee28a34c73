package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
	"go.uber.org/zap"

	"github.com/decker502/particlebed/pkg/particle"
	"github.com/decker502/particlebed/pkg/physics"
)

// WaveMachineName is the registered name of the wave machine scenario.
const WaveMachineName = "Wave machine"

// WaveMachine rocks a closed box of particles back and forth with a motor.
type WaveMachine struct {
	Base

	body       *box2d.B2Body
	joint      *box2d.B2RevoluteJoint
	oscillator *physics.Oscillator
	group      *particle.Group
}

// NewWaveMachine builds the wave machine scenario.
func NewWaveMachine(env Env) (*WaveMachine, error) {
	cfg := env.config().WaveMachine
	w := &WaveMachine{Base: newBase(env, WaveMachineName)}
	w.parameter.Reset()

	ground := w.world.StaticBody()

	w.body = w.world.DynamicBody(box2d.MakeB2Vec2(0, 1), false)
	w.world.AddBox(w.body, 0.05, 1, box2d.MakeB2Vec2(2, 0), cfg.BodyDensity)
	w.world.AddBox(w.body, 0.05, 1, box2d.MakeB2Vec2(-2, 0), cfg.BodyDensity)
	w.world.AddBox(w.body, 2, 0.05, box2d.MakeB2Vec2(0, 1), cfg.BodyDensity)
	w.world.AddBox(w.body, 2, 0.05, box2d.MakeB2Vec2(0, -1), cfg.BodyDensity)

	joint, err := w.world.RevoluteMotor(physics.RevoluteMotorDef{
		BodyA:          ground,
		BodyB:          w.body,
		LocalAnchorA:   box2d.MakeB2Vec2(0, 1),
		LocalAnchorB:   box2d.MakeB2Vec2(0, 0),
		ReferenceAngle: 0,
		MotorSpeed:     cfg.MotorAmplitude * math.Pi,
		MaxMotorTorque: cfg.MaxMotorTorque,
	})
	if err != nil {
		return nil, fmt.Errorf("wave machine: %w", err)
	}
	w.joint = joint
	w.oscillator = physics.NewOscillator(joint, cfg.MotorAmplitude, math.Pi)

	ps := w.particles
	ps.SetRadius(cfg.ParticleRadius)
	ps.SetDamping(cfg.Damping)

	flags := w.parameter.Value().Flags
	group, err := ps.CreateParticleGroup(particle.GroupDef{
		Flags:      flags,
		Center:     box2d.MakeB2Vec2(0, 1),
		HalfWidth:  cfg.FillHalfWidth,
		HalfHeight: cfg.FillHalfHeight,
		Color:      particle.White,
	})
	if err != nil && !errors.Is(err, particle.ErrMaxParticles) {
		return nil, fmt.Errorf("wave machine: %w", err)
	}
	if flags.Has(particle.ColorMixing) {
		ps.ColorParticleGroup(group, 0)
	}
	w.group = group

	w.logger.Info("wave machine created",
		zap.Int("particles", group.Count()),
		zap.String("particleType", w.parameter.Value().Name))
	return w, nil
}

// Step advances the simulation and drives the motor. The motor phase only
// moves while simulated time does.
func (w *WaveMachine) Step(s *Settings) {
	dt := w.advance(s)
	w.oscillator.Advance(dt)
}

// Joint returns the motorized joint.
func (w *WaveMachine) Joint() *box2d.B2RevoluteJoint {
	return w.joint
}

// Oscillator returns the motor driver.
func (w *WaveMachine) Oscillator() *physics.Oscillator {
	return w.oscillator
}

// Group returns the particle block.
func (w *WaveMachine) Group() *particle.Group {
	return w.group
}

func (w *WaveMachine) DefaultViewZoom() float64 { return 0.1 }
