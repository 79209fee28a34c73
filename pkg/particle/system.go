// Package particle implements the particle store shared by the emitters and
// scenarios: creation with a capacity limit, per-particle attributes,
// aging and destruction by age, group seeding and a simple integrator.
//
// Particles are addressed by index. Step compacts storage when particles
// expire, so an index is only meaningful within the tick that produced it.
package particle

import (
	"errors"

	"github.com/ByteArena/box2d"
	"go.uber.org/zap"
)

// InvalidIndex is returned alongside an error when a particle could not be created.
const InvalidIndex = -1

// ErrMaxParticles is returned by CreateParticle when the store is full.
var ErrMaxParticles = errors.New("particle: max particle count reached")

// Def describes a particle to create.
type Def struct {
	Flags    Flags
	Position box2d.B2Vec2
	Velocity box2d.B2Vec2
	Color    Color
	// Lifetime in seconds, 0 = infinite.
	Lifetime float64
	Group    *Group
}

// Collider reports whether a point lies inside solid geometry.
type Collider interface {
	Contains(p box2d.B2Vec2) bool
}

// System stores all particles of a scenario.
type System struct {
	logger *zap.Logger

	radius             float64
	damping            float64
	gravity            box2d.B2Vec2
	maxCount           int // 0 = unlimited
	destructionByAge   bool
	strictContactCheck bool
	collider           Collider

	positions  []box2d.B2Vec2
	velocities []box2d.B2Vec2
	colors     []Color
	flags      []Flags
	lifetimes  []float64
	ages       []float64
	groups     []*Group

	allFlags  Flags
	destroyed int
}

// NewSystem creates an empty particle store.
func NewSystem(logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{
		logger:  logger.Named("particles"),
		radius:  1.0,
		gravity: box2d.MakeB2Vec2(0, -10),
	}
}

// SetRadius sets the particle radius used for group spacing and drawing.
func (s *System) SetRadius(radius float64) {
	s.radius = radius
}

// Radius returns the particle radius.
func (s *System) Radius() float64 {
	return s.radius
}

// SetDamping sets the linear velocity damping coefficient.
func (s *System) SetDamping(damping float64) {
	s.damping = damping
}

// Damping returns the linear velocity damping coefficient.
func (s *System) Damping() float64 {
	return s.damping
}

// SetGravity sets the acceleration applied to every non-wall particle.
func (s *System) SetGravity(g box2d.B2Vec2) {
	s.gravity = g
}

// SetMaxParticleCount limits the number of live particles. 0 removes the limit.
// Lowering the limit does not destroy existing particles.
func (s *System) SetMaxParticleCount(count int) {
	if count < 0 {
		count = 0
	}
	s.maxCount = count
}

// MaxParticleCount returns the capacity, 0 when unlimited.
func (s *System) MaxParticleCount() int {
	return s.maxCount
}

// SetDestructionByAge enables expiring particles whose finite lifetime has elapsed.
func (s *System) SetDestructionByAge(enabled bool) {
	s.destructionByAge = enabled
}

// DestructionByAge reports whether finite lifetimes are enforced.
func (s *System) DestructionByAge() bool {
	return s.destructionByAge
}

// SetStrictContactCheck toggles the stricter collider test (both axes are
// checked separately before a particle may slide).
func (s *System) SetStrictContactCheck(enabled bool) {
	s.strictContactCheck = enabled
}

// StrictContactCheck reports whether the stricter collider test is on.
func (s *System) StrictContactCheck() bool {
	return s.strictContactCheck
}

// SetCollider sets the solid geometry particles are kept out of. nil disables collision.
func (s *System) SetCollider(c Collider) {
	s.collider = c
}

// CreateParticle appends a particle and returns its index.
// When the store is full it returns InvalidIndex and ErrMaxParticles.
func (s *System) CreateParticle(def Def) (int, error) {
	if s.maxCount > 0 && len(s.positions) >= s.maxCount {
		return InvalidIndex, ErrMaxParticles
	}
	index := len(s.positions)
	s.positions = append(s.positions, def.Position)
	s.velocities = append(s.velocities, def.Velocity)
	s.colors = append(s.colors, def.Color)
	s.flags = append(s.flags, def.Flags)
	s.lifetimes = append(s.lifetimes, def.Lifetime)
	s.ages = append(s.ages, 0)
	s.groups = append(s.groups, def.Group)
	s.allFlags |= def.Flags
	if def.Group != nil {
		def.Group.count++
	}
	return index, nil
}

// Count returns the number of live particles.
func (s *System) Count() int {
	return len(s.positions)
}

// DestroyedCount returns how many particles expired since the store was created.
func (s *System) DestroyedCount() int {
	return s.destroyed
}

// SetParticleLifetime sets the lifetime of particle index in seconds, 0 = infinite.
// The particle's age is reset so the lifetime counts from now.
func (s *System) SetParticleLifetime(index int, seconds float64) {
	if index < 0 || index >= len(s.lifetimes) {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	s.lifetimes[index] = seconds
	s.ages[index] = 0
}

// ParticleLifetime returns the lifetime of particle index, 0 when infinite or out of range.
func (s *System) ParticleLifetime(index int) float64 {
	if index < 0 || index >= len(s.lifetimes) {
		return 0
	}
	return s.lifetimes[index]
}

// ParticleAge returns the seconds particle index has been alive.
func (s *System) ParticleAge(index int) float64 {
	if index < 0 || index >= len(s.ages) {
		return 0
	}
	return s.ages[index]
}

// SetParticleColor overwrites the color of particle index.
func (s *System) SetParticleColor(index int, c Color) {
	if index < 0 || index >= len(s.colors) {
		return
	}
	s.colors[index] = c
}

// SetParticleFlags overwrites the flags of particle index.
func (s *System) SetParticleFlags(index int, f Flags) {
	if index < 0 || index >= len(s.flags) {
		return
	}
	s.flags[index] = f
	s.allFlags |= f
}

// Position returns the position of particle index.
func (s *System) Position(index int) box2d.B2Vec2 {
	return s.positions[index]
}

// Velocity returns the velocity of particle index.
func (s *System) Velocity(index int) box2d.B2Vec2 {
	return s.velocities[index]
}

// Color returns the color of particle index.
func (s *System) Color(index int) Color {
	return s.colors[index]
}

// Flags returns the flags of particle index.
func (s *System) Flags(index int) Flags {
	return s.flags[index]
}

// Positions returns the position buffer. It must not be modified and is
// invalidated by the next Step or CreateParticle.
func (s *System) Positions() []box2d.B2Vec2 {
	return s.positions
}

// Colors returns the color buffer with the same validity rules as Positions.
func (s *System) Colors() []Color {
	return s.colors
}

// AllFlags returns the union of flags of every particle ever created.
func (s *System) AllFlags() Flags {
	return s.allFlags
}

// Clear removes every particle. Groups keep their identity but drop to
// zero particles.
func (s *System) Clear() {
	for _, g := range s.groups {
		if g != nil {
			g.count = 0
		}
	}
	s.positions = s.positions[:0]
	s.velocities = s.velocities[:0]
	s.colors = s.colors[:0]
	s.flags = s.flags[:0]
	s.lifetimes = s.lifetimes[:0]
	s.ages = s.ages[:0]
	clear(s.groups)
	s.groups = s.groups[:0]
	s.allFlags = 0
}

// Step advances ages, expires particles and integrates the survivors.
// A non-positive dt leaves the store untouched.
func (s *System) Step(dt float64) {
	if dt <= 0 {
		return
	}

	damp := 1.0
	if s.damping > 0 {
		damp = 1.0 / (1.0 + s.damping*dt)
	}

	write := 0
	expired := 0
	for i := range s.positions {
		s.ages[i] += dt
		if s.destructionByAge && s.lifetimes[i] > 0 && s.ages[i] >= s.lifetimes[i] {
			if g := s.groups[i]; g != nil {
				g.count--
			}
			expired++
			continue
		}

		if s.flags[i]&Wall == 0 {
			v := s.velocities[i]
			v.X = (v.X + s.gravity.X*dt) * damp
			v.Y = (v.Y + s.gravity.Y*dt) * damp
			s.positions[i], s.velocities[i] = s.move(s.positions[i], v, dt)
		}

		if write != i {
			s.positions[write] = s.positions[i]
			s.velocities[write] = s.velocities[i]
			s.colors[write] = s.colors[i]
			s.flags[write] = s.flags[i]
			s.lifetimes[write] = s.lifetimes[i]
			s.ages[write] = s.ages[i]
			s.groups[write] = s.groups[i]
		}
		write++
	}

	if expired > 0 {
		for i := write; i < len(s.groups); i++ {
			s.groups[i] = nil
		}
		s.positions = s.positions[:write]
		s.velocities = s.velocities[:write]
		s.colors = s.colors[:write]
		s.flags = s.flags[:write]
		s.lifetimes = s.lifetimes[:write]
		s.ages = s.ages[:write]
		s.groups = s.groups[:write]
		s.destroyed += expired
		s.logger.Debug("expired particles", zap.Int("expired", expired), zap.Int("count", write))
	}
}

// move integrates one particle, keeping it out of the collider.
// Blocked motion slides along the free axis and zeroes the blocked component.
// A particle that already overlaps solid geometry moves freely until it is out.
func (s *System) move(p, v box2d.B2Vec2, dt float64) (box2d.B2Vec2, box2d.B2Vec2) {
	next := box2d.MakeB2Vec2(p.X+v.X*dt, p.Y+v.Y*dt)
	if s.collider == nil || !s.collider.Contains(next) || s.collider.Contains(p) {
		return next, v
	}

	alongX := box2d.MakeB2Vec2(next.X, p.Y)
	alongY := box2d.MakeB2Vec2(p.X, next.Y)
	freeX := !s.collider.Contains(alongX)
	freeY := !s.collider.Contains(alongY)
	if s.strictContactCheck && freeX && freeY {
		// Corner contact: the diagonal is blocked but each axis alone is
		// free. Stop rather than pick an axis.
		return p, box2d.MakeB2Vec2(0, 0)
	}
	switch {
	case freeX:
		return alongX, box2d.MakeB2Vec2(v.X, 0)
	case freeY:
		return alongY, box2d.MakeB2Vec2(0, v.Y)
	default:
		return p, box2d.MakeB2Vec2(0, 0)
	}
}
