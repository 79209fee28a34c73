package scenario

import "github.com/decker502/particlebed/pkg/config"

// Settings are the testbed controls shared by every scenario.
type Settings struct {
	// Hertz is the simulation tick rate. 0 freezes the simulation.
	Hertz              float64 `yaml:"hertz"`
	VelocityIterations int     `yaml:"velocityIterations"`
	PositionIterations int     `yaml:"positionIterations"`

	Pause      bool `yaml:"-"`
	SingleStep bool `yaml:"-"`

	// Scenario is the name of the running scenario.
	Scenario string `yaml:"scenario"`

	// ParticleType is the name of the selected particle type.
	ParticleType string `yaml:"particleType"`
}

// DefaultSettings returns the settings described by cfg.
func DefaultSettings(cfg config.TestbedConfig) *Settings {
	return &Settings{
		Hertz:              cfg.Hertz,
		VelocityIterations: cfg.VelocityIterations,
		PositionIterations: cfg.PositionIterations,
		Scenario:           cfg.Scenario,
		ParticleType:       cfg.ParticleType,
	}
}

// TimeStep returns the simulated seconds of the next tick. It is 0 when
// the tick rate is not positive and while paused, unless a single step
// was requested.
func (s *Settings) TimeStep() float64 {
	if s.Hertz <= 0 {
		return 0
	}
	if s.Pause && !s.SingleStep {
		return 0
	}
	return 1 / s.Hertz
}
