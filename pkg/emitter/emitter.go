// Package emitter turns a continuous emission rate into discrete particle
// creations.
//
// Each Step adds rate*dt to a fractional accumulator and creates the whole
// part of it, so the long-run rate matches the configured one regardless of
// tick jitter. Only the fractional remainder survives between ticks.
package emitter

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/ByteArena/box2d"
	"go.uber.org/zap"

	"github.com/decker502/particlebed/pkg/particle"
)

// ParticleSystem is the part of the particle store an Emitter and its hooks use.
type ParticleSystem interface {
	CreateParticle(def particle.Def) (int, error)
	SetParticleLifetime(index int, seconds float64)
	ParticleLifetime(index int) float64
}

// Emitter creates particles inside a rectangular region at a fixed rate.
type Emitter struct {
	system ParticleSystem
	hook   Hook
	rng    *rand.Rand
	logger *zap.Logger

	// Emission region.
	origin   box2d.B2Vec2
	halfSize box2d.B2Vec2
	velocity box2d.B2Vec2
	speed    float64
	color    particle.Color
	flags    particle.Flags
	group    *particle.Group

	emitRate    float64
	maxEmitRate float64 // 0 = unbounded

	// pending is the fractional particle carried to the next Step, in [0, 1).
	pending float64

	truncated int
}

// New creates an emitter that draws positions from rng.
func New(rng *rand.Rand, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{
		rng:    rng,
		logger: logger.Named("emitter"),
		color:  particle.White,
	}
}

// Step creates the particles owed for dt seconds and returns how many were
// created. Created indices are written to indices while it has room.
// dt must not be negative.
//
// When the particle store is full the remaining particles of this tick are
// dropped; they are not retried later.
func (e *Emitter) Step(dt float64, indices []int) int {
	toEmit := e.pending + e.emitRate*dt
	count := math.Floor(toEmit)
	e.pending = toEmit - count
	if e.system == nil || count < 1 {
		return 0
	}

	n := int(count)
	created := 0
	for i := 0; i < n; i++ {
		index, err := e.system.CreateParticle(e.nextDef())
		if err != nil {
			if errors.Is(err, particle.ErrMaxParticles) {
				e.truncated += n - i
				e.logger.Debug("emission truncated at capacity",
					zap.Int("requested", n),
					zap.Int("created", created))
			} else {
				e.logger.Warn("particle creation failed", zap.Error(err))
			}
			break
		}
		if e.hook != nil {
			e.hook.ParticleCreated(e.system, index)
		}
		if created < len(indices) {
			indices[created] = index
		}
		created++
	}
	return created
}

// nextDef samples one particle inside the region.
func (e *Emitter) nextDef() particle.Def {
	ox := e.rng.Float64()*2 - 1
	oy := e.rng.Float64()*2 - 1

	velocity := e.velocity
	if e.speed != 0 {
		if l := math.Hypot(ox, oy); l > 0 {
			velocity.X += ox / l * e.speed
			velocity.Y += oy / l * e.speed
		}
	}

	return particle.Def{
		Flags:    e.flags,
		Position: box2d.MakeB2Vec2(e.origin.X+ox*e.halfSize.X, e.origin.Y+oy*e.halfSize.Y),
		Velocity: velocity,
		Color:    e.color,
		Group:    e.group,
	}
}

// SetParticleSystem sets the store particles are created in.
func (e *Emitter) SetParticleSystem(sys ParticleSystem) {
	e.system = sys
}

// ParticleSystem returns the store particles are created in.
func (e *Emitter) ParticleSystem() ParticleSystem {
	return e.system
}

// SetHook sets the hook called for every created particle. nil disables it.
func (e *Emitter) SetHook(h Hook) {
	e.hook = h
}

// Hook returns the current hook.
func (e *Emitter) Hook() Hook {
	return e.hook
}

// SetPosition sets the center of the emission region.
func (e *Emitter) SetPosition(p box2d.B2Vec2) {
	e.origin = p
}

// Position returns the center of the emission region.
func (e *Emitter) Position() box2d.B2Vec2 {
	return e.origin
}

// SetSize sets the full width and height of the emission region.
func (e *Emitter) SetSize(size box2d.B2Vec2) {
	e.halfSize = box2d.MakeB2Vec2(size.X*0.5, size.Y*0.5)
}

// Size returns the full width and height of the emission region.
func (e *Emitter) Size() box2d.B2Vec2 {
	return box2d.MakeB2Vec2(e.halfSize.X*2, e.halfSize.Y*2)
}

// HalfSize returns the half extents of the emission region.
func (e *Emitter) HalfSize() box2d.B2Vec2 {
	return e.halfSize
}

// SetVelocity sets the base velocity of created particles.
func (e *Emitter) SetVelocity(v box2d.B2Vec2) {
	e.velocity = v
}

// Velocity returns the base velocity of created particles.
func (e *Emitter) Velocity() box2d.B2Vec2 {
	return e.velocity
}

// SetSpeed sets the outward speed added along each particle's offset from the center.
func (e *Emitter) SetSpeed(speed float64) {
	e.speed = speed
}

// Speed returns the outward speed.
func (e *Emitter) Speed() float64 {
	return e.speed
}

// SetColor sets the color of created particles.
func (e *Emitter) SetColor(c particle.Color) {
	e.color = c
}

// Color returns the color of created particles.
func (e *Emitter) Color() particle.Color {
	return e.color
}

// SetFlags sets the behavior flags of created particles.
func (e *Emitter) SetFlags(f particle.Flags) {
	e.flags = f
}

// Flags returns the behavior flags of created particles.
func (e *Emitter) Flags() particle.Flags {
	return e.flags
}

// SetGroup puts created particles into g. nil creates ungrouped particles.
func (e *Emitter) SetGroup(g *particle.Group) {
	e.group = g
}

// Group returns the group created particles join.
func (e *Emitter) Group() *particle.Group {
	return e.group
}

// SetEmitRate sets the rate in particles per second. Negative rates become
// 0 and rates above the ceiling set by SetMaxEmitRate are capped.
// The fractional accumulator is kept across rate changes.
func (e *Emitter) SetEmitRate(rate float64) {
	if rate < 0 || math.IsNaN(rate) {
		rate = 0
	}
	if e.maxEmitRate > 0 && rate > e.maxEmitRate {
		rate = e.maxEmitRate
	}
	e.emitRate = rate
}

// EmitRate returns the rate in particles per second.
func (e *Emitter) EmitRate() float64 {
	return e.emitRate
}

// SetMaxEmitRate sets the rate ceiling, 0 for none. The current rate is re-clamped.
func (e *Emitter) SetMaxEmitRate(max float64) {
	if max < 0 {
		max = 0
	}
	e.maxEmitRate = max
	e.SetEmitRate(e.emitRate)
}

// MaxEmitRate returns the rate ceiling, 0 when unbounded.
func (e *Emitter) MaxEmitRate() float64 {
	return e.maxEmitRate
}

// Pending returns the fractional particle carried into the next Step.
func (e *Emitter) Pending() float64 {
	return e.pending
}

// Truncated returns how many particles were dropped because the store was full.
func (e *Emitter) Truncated() int {
	return e.truncated
}
