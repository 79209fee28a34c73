// Package scenario holds the testbed scenarios: a rigid-body world and a
// particle store driven by a per-tick controller, plus the registry the
// testbed picks them from.
package scenario

import (
	"math/rand/v2"

	"github.com/ByteArena/box2d"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/particlebed/pkg/config"
	"github.com/decker502/particlebed/pkg/particle"
	"github.com/decker502/particlebed/pkg/physics"
)

// Scenario is a runnable testbed scene.
type Scenario interface {
	// Name returns the registered name.
	Name() string

	// Step advances the scenario by one tick of s.
	Step(s *Settings)

	// Keyboard handles a key press. Unmapped keys are ignored.
	Keyboard(key ebiten.Key)

	// Help returns the scenario's help text, one line per entry.
	Help() []string

	// DefaultViewZoom returns the initial zoom of the debug view.
	DefaultViewZoom() float64

	World() *physics.World
	Particles() *particle.System

	// RestartOnParameterChange reports whether a new particle type
	// selection rebuilds the scenario.
	RestartOnParameterChange() bool

	// Close releases the world and the particles.
	Close()
}

// Env is what every scenario factory closes over.
type Env struct {
	Logger *zap.Logger
	Config *config.Config

	// Seed makes every construction draw the same random numbers.
	Seed uint64

	// Parameter is the particle type selector shared across restarts.
	Parameter *Parameter
}

func (e Env) config() *config.Config {
	if e.Config == nil {
		return config.Default()
	}
	return e.Config
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e Env) parameter() *Parameter {
	if e.Parameter == nil {
		return NewParameter()
	}
	return e.Parameter
}

// rand returns a fresh source seeded from Seed and stream.
func (e Env) rand(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(e.Seed, stream))
}

// Base is embedded by every scenario. It owns the world and the particle
// store and advances both each tick.
type Base struct {
	name      string
	logger    *zap.Logger
	world     *physics.World
	particles *particle.System
	parameter *Parameter
	steps     int
}

func newBase(env Env, name string) Base {
	logger := env.logger().Named(name)
	gravity := box2d.MakeB2Vec2(0, -10)

	world := physics.NewWorld(gravity, logger)
	particles := particle.NewSystem(logger)
	particles.SetGravity(gravity)
	particles.SetCollider(world)

	return Base{
		name:      name,
		logger:    logger,
		world:     world,
		particles: particles,
		parameter: env.parameter(),
	}
}

// advance steps the world and the particles by the tick time step and
// returns it. A requested single step is consumed.
func (b *Base) advance(s *Settings) float64 {
	dt := s.TimeStep()
	if s.Pause && s.SingleStep {
		s.SingleStep = false
	}

	strict := b.parameter.Value().Options&OptionStrictContacts != 0
	b.particles.SetStrictContactCheck(strict)

	b.world.Step(dt, s.VelocityIterations, s.PositionIterations)
	b.particles.Step(dt)
	if dt > 0 {
		b.steps++
	}
	return dt
}

// Name returns the registered name.
func (b *Base) Name() string { return b.name }

// Keyboard ignores every key.
func (b *Base) Keyboard(ebiten.Key) {}

// Help returns no help text.
func (b *Base) Help() []string { return nil }

// DefaultViewZoom returns 1.
func (b *Base) DefaultViewZoom() float64 { return 1 }

// RestartOnParameterChange returns true.
func (b *Base) RestartOnParameterChange() bool { return true }

func (b *Base) World() *physics.World { return b.world }

func (b *Base) Particles() *particle.System { return b.particles }

// Parameter returns the particle type selector.
func (b *Base) Parameter() *Parameter { return b.parameter }

// Steps returns how many ticks advanced simulated time.
func (b *Base) Steps() int { return b.steps }

// Close releases the world and the particles.
func (b *Base) Close() {
	b.world.Close()
	b.particles.Clear()
	b.logger.Debug("scenario closed", zap.Int("steps", b.steps))
}
